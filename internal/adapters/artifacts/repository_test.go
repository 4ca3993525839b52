package artifacts

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/deploykit/internal/domain"
)

const erc20ABI = `[{"type":"constructor","inputs":[{"name":"name_","type":"string"},{"name":"symbol_","type":"string"}]},
{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]}]`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func setupArtifacts(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	// hardhat artifact
	writeFile(t, filepath.Join(dir, "contracts", "ERC20.sol", "ERC20.json"),
		`{"contractName":"ERC20","sourceName":"contracts/ERC20.sol","abi":`+erc20ABI+`,"bytecode":"0x6080"}`)
	writeFile(t, filepath.Join(dir, "contracts", "ERC20.sol", "ERC20.dbg.json"), `{"buildInfo":"x"}`)

	// forge artifact
	writeFile(t, filepath.Join(dir, "Counter.sol", "Counter.json"),
		`{"abi":[],"bytecode":{"object":"6080"},"metadata":{"settings":{"compilationTarget":{"src/Counter.sol":"Counter"}}}}`)

	// interfaces have no bytecode
	writeFile(t, filepath.Join(dir, "contracts", "IERC20.sol", "IERC20.json"),
		`{"contractName":"IERC20","abi":[],"bytecode":"0x"}`)

	// same name from two sources
	writeFile(t, filepath.Join(dir, "contracts", "a", "Token.sol", "Token.json"),
		`{"contractName":"Token","sourceName":"contracts/a/Token.sol","abi":[],"bytecode":"0x01"}`)
	writeFile(t, filepath.Join(dir, "contracts", "b", "Token.sol", "Token.json"),
		`{"contractName":"Token","sourceName":"contracts/b/Token.sol","abi":[],"bytecode":"0x02"}`)

	writeFile(t, filepath.Join(dir, "build-info", "abc.json"), `{"contractName":"Ignored","bytecode":"0x01"}`)
	return dir
}

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryAt(setupArtifacts(t), slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Run("hardhat artifact", func(t *testing.T) {
		a, err := repo.GetArtifact(ctx, "ERC20")
		require.NoError(t, err)
		assert.Equal(t, "0x6080", a.Bytecode)
		assert.Equal(t, filepath.Join("contracts", "ERC20.sol", "ERC20.json"), a.Path)

		parsed, err := repo.GetABI(ctx, "ERC20")
		require.NoError(t, err)
		assert.Len(t, parsed.Constructor.Inputs, 2)
		assert.Contains(t, parsed.Methods, "decimals")
	})

	t.Run("forge artifact", func(t *testing.T) {
		a, err := repo.GetArtifact(ctx, "Counter")
		require.NoError(t, err)
		assert.Equal(t, "0x6080", a.Bytecode)
		assert.Equal(t, "src/Counter.sol", a.SourceName)
	})

	t.Run("missing and abstract contracts", func(t *testing.T) {
		_, err := repo.GetArtifact(ctx, "IERC20")
		assert.ErrorIs(t, err, domain.ErrContractNotFound)
		_, err = repo.GetArtifact(ctx, "Ignored")
		assert.ErrorIs(t, err, domain.ErrContractNotFound)
	})

	t.Run("ambiguous names need a source", func(t *testing.T) {
		_, err := repo.GetArtifact(ctx, "Token")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous")

		a, err := repo.GetArtifact(ctx, "b/Token.sol:Token")
		require.NoError(t, err)
		assert.Equal(t, "0x02", a.Bytecode)
	})

	t.Run("names", func(t *testing.T) {
		names, err := repo.Names()
		require.NoError(t, err)
		assert.Equal(t, []string{"Counter", "ERC20", "Token"}, names)
	})
}

func TestRepositoryMissingDir(t *testing.T) {
	repo := NewRepositoryAt(filepath.Join(t.TempDir(), "artifacts"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := repo.GetArtifact(context.Background(), "ERC20")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile the contracts first")
}
