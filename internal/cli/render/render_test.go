package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/deploykit/internal/domain"
	"github.com/trebuchet-org/deploykit/internal/domain/models"
	"github.com/trebuchet-org/deploykit/internal/usecase"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

func usdcResult() *usecase.ShowDeploymentResult {
	return &usecase.ShowDeploymentResult{
		Deployment: &models.Deployment{
			Name:            "USDC",
			Network:         "sepolia",
			Contract:        "ERC20",
			Address:         "0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238",
			TransactionHash: "0xabc",
			Receipt:         &models.Receipt{BlockNumber: 7},
			Args:            json.RawMessage(`["USD Coin","USDC"]`),
			NumDeployments:  1,
			DeployedAt:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Deployer", Title("deployer"))
	assert.Equal(t, "Fee Recipient", Title("fee_recipient"))
}

func TestDeploymentRenderer(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewDeploymentRenderer(&out, FormatText).Render(usdcResult()))

		s := out.String()
		assert.Contains(t, s, "Deployment: USDC")
		assert.Contains(t, s, "Contract: ERC20")
		assert.Contains(t, s, "Block: 7")
		assert.Contains(t, s, "[1] USDC")
		assert.Contains(t, s, "Deployed at: 2024-05-01T12:00:00Z")
		assert.NotContains(t, s, "on chain")
	})

	t.Run("text with verification", func(t *testing.T) {
		result := usdcResult()
		missing := false
		result.Verified, result.Reason = &missing, "no code at address"

		var out bytes.Buffer
		require.NoError(t, NewDeploymentRenderer(&out, "").Render(result))
		assert.Contains(t, out.String(), "Not on chain: no code at address")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewDeploymentRenderer(&out, FormatJSON).Render(usdcResult()))

		var got map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238", got["address"])
		assert.Equal(t, []any{"USD Coin", "USDC"}, got["args"])
		assert.NotContains(t, got, "onChain")
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewDeploymentRenderer(&out, FormatYAML).Render(usdcResult()))

		var got map[string]any
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "USDC", got["name"])
		assert.Equal(t, "sepolia", got["network"])
		assert.Equal(t, 7, got["blockNumber"])
	})

	t.Run("unknown format", func(t *testing.T) {
		err := NewDeploymentRenderer(&bytes.Buffer{}, "xml").Render(usdcResult())
		assert.ErrorContains(t, err, "unsupported format")
	})
}

func TestExportRenderer(t *testing.T) {
	export := &usecase.ExportResult{
		Path:     "deployments.json",
		ChainIDs: []string{"1", "11155111"},
		Contracts: map[string]map[string]string{
			"1":        {"USDC": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"},
			"11155111": {"USDC": "0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238", "Counter": "0x01"},
		},
	}

	t.Run("deploy summary", func(t *testing.T) {
		var out bytes.Buffer
		err := NewExportRenderer(&out).RenderDeploy(&usecase.DeployAndExportResult{
			GasPrice: big.NewInt(3_500_000_000),
			Run:      &usecase.RunResult{Executed: []string{"00_deploy"}, Skipped: []string{"01_fund"}},
			Export:   export,
		})
		require.NoError(t, err)

		s := out.String()
		assert.Contains(t, s, "Gas price: 3.5 gwei")
		assert.Contains(t, s, "✓ 00_deploy")
		assert.Contains(t, s, "01_fund (skipped)")
		assert.Contains(t, s, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
		assert.Contains(t, s, "Exported to deployments.json")
		assert.Less(t, bytes.Index(out.Bytes(), []byte("Counter")), bytes.Index(out.Bytes(), []byte("0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238")))
	})

	t.Run("nothing exported", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewExportRenderer(&out).Render(&usecase.ExportResult{Path: "deployments.json"}))
		assert.Contains(t, out.String(), "No deployments to export")
	})
}

func TestNetworksRenderer(t *testing.T) {
	var out bytes.Buffer
	err := NewNetworksRenderer(&out).Render(&usecase.ListNetworksResult{
		Active: "localhost",
		Networks: []usecase.NetworkStatus{
			{Name: "localhost", ChainID: 31337, RPCURL: "http://127.0.0.1:8545"},
			{Name: "mainnet", ChainID: 1, Live: true, RPCURL: "https://eth.llamarpc.com"},
			{Name: "broken", Error: errors.New("dial tcp: connection refused")},
		},
	})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "31337")
	assert.Contains(t, s, "yes")
	assert.Contains(t, s, "error: dial tcp: connection refused")

	out.Reset()
	require.NoError(t, NewNetworksRenderer(&out).Render(&usecase.ListNetworksResult{}))
	assert.Contains(t, out.String(), "No networks configured")
}

func TestAccountsAndRecipesRenderers(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewAccountsRenderer(&out).Render(domain.NamedAccounts{
		{Role: "deployer", Address: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"},
	}))
	assert.Contains(t, out.String(), "Deployer")
	assert.Contains(t, out.String(), "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	out.Reset()
	require.NoError(t, NewRecipesRenderer(&out).Render([]usecase.RecipeInfo{
		{ID: "00_deploy", Tags: []string{"USDC", "core"}},
		{ID: "01_fund", Dependencies: []string{"USDC"}},
	}))
	assert.Contains(t, out.String(), "USDC, core")
	assert.Contains(t, out.String(), "01_fund")

	out.Reset()
	require.NoError(t, NewRecipesRenderer(&out).Render(nil))
	assert.Contains(t, out.String(), "No recipes found")
}
