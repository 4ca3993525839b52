package config

// ProjectFileName is the project file looked up from the working directory.
const ProjectFileName = "deploykit.toml"

// ProjectConfig represents deploykit.toml
type ProjectConfig struct {
	DefaultNetwork string                   `toml:"default_network"`
	Paths          PathsConfig              `toml:"paths"`
	Export         ExportConfig             `toml:"export"`
	Networks       map[string]NetworkConfig `toml:"networks"`
	// NamedAccounts maps role -> (network name | chain id | "default") -> value.
	// A value is either an account index (int) or a literal address (string).
	NamedAccounts map[string]map[string]any `toml:"named_accounts"`
}

// PathsConfig holds project relative directories
type PathsConfig struct {
	Artifacts   string `toml:"artifacts"`
	Deployments string `toml:"deployments"`
}

// ExportConfig configures the flattened export artifact
type ExportConfig struct {
	Path         string `toml:"path"`
	LocalChainID uint64 `toml:"local_chain_id"`
}

// NetworkConfig is a [networks.<name>] entry
type NetworkConfig struct {
	URL      string   `toml:"url"`
	ChainID  uint64   `toml:"chain_id"`
	Accounts []string `toml:"accounts"`
	Live     bool     `toml:"live"`
	Tags     []string `toml:"tags"`
}
