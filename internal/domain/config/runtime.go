package config

import (
	"slices"
	"strconv"
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Network is the active network; deploy recipes run against it
	Network *Network

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Resolved project file
	Project *ProjectConfig

	// Absolute paths derived from the project file
	ArtifactsDir   string
	DeploymentsDir string
	ExportPath     string
	LocalChainID   string
}

// TempExportPath is where the raw multi-network export is written before
// flattening.
func (c *RuntimeConfig) TempExportPath() string {
	return c.ExportPath + ".tmp"
}

// Network represents a resolved network configuration
type Network struct {
	Name    string
	RPCURL  string
	ChainID uint64
	// Accounts are private keys of the signers available on the network
	Accounts []string
	// Live networks need confirmation before broadcasting
	Live bool
	// Tags label the network, e.g. "local" or "staging", for recipe Skip
	// functions
	Tags []string
}

// HasTag reports whether the network is labelled tag
func (n *Network) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// ChainIDString returns the chain id as used for export keys.
func (n *Network) ChainIDString() string {
	return strconv.FormatUint(n.ChainID, 10)
}
