package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/trebuchet-org/deploykit/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Output formats of the show command
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DeploymentRenderer renders detailed information about a single deployment
type DeploymentRenderer struct {
	out    io.Writer
	format string
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, format string) *DeploymentRenderer {
	return &DeploymentRenderer{out: out, format: format}
}

type deploymentView struct {
	Name            string     `json:"name" yaml:"name"`
	Network         string     `json:"network" yaml:"network"`
	Contract        string     `json:"contract,omitempty" yaml:"contract,omitempty"`
	Address         string     `json:"address" yaml:"address"`
	TransactionHash string     `json:"transactionHash,omitempty" yaml:"transactionHash,omitempty"`
	BlockNumber     uint64     `json:"blockNumber,omitempty" yaml:"blockNumber,omitempty"`
	Args            any        `json:"args,omitempty" yaml:"args,omitempty"`
	NumDeployments  int        `json:"numDeployments" yaml:"numDeployments"`
	DeployedAt      *time.Time `json:"deployedAt,omitempty" yaml:"deployedAt,omitempty"`
	OnChain         *bool      `json:"onChain,omitempty" yaml:"onChain,omitempty"`
	OnChainReason   string     `json:"onChainReason,omitempty" yaml:"onChainReason,omitempty"`
}

func newDeploymentView(result *usecase.ShowDeploymentResult) (*deploymentView, error) {
	d := result.Deployment
	view := &deploymentView{
		Name:            d.Name,
		Network:         d.Network,
		Contract:        d.Contract,
		Address:         d.Address,
		TransactionHash: d.TransactionHash,
		NumDeployments:  d.NumDeployments,
		OnChain:         result.Verified,
		OnChainReason:   result.Reason,
	}
	if d.Receipt != nil {
		view.BlockNumber = d.Receipt.BlockNumber
	}
	if !d.DeployedAt.IsZero() {
		view.DeployedAt = &d.DeployedAt
	}
	if len(d.Args) > 0 {
		if err := json.Unmarshal(d.Args, &view.Args); err != nil {
			return nil, fmt.Errorf("invalid args of %s: %w", d.Name, err)
		}
	}
	return view, nil
}

// Render prints the deployment in the configured format
func (r *DeploymentRenderer) Render(result *usecase.ShowDeploymentResult) error {
	view, err := newDeploymentView(result)
	if err != nil {
		return err
	}

	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		r.renderText(view)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (use text, json or yaml)", r.format)
	}
}

func (r *DeploymentRenderer) renderText(view *deploymentView) {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment: %s\n", view.Name)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintln(r.out, "\nBasic Information:")
	if view.Contract != "" {
		fmt.Fprintf(r.out, "  Contract: %s\n", color.New(color.FgYellow).Sprint(view.Contract))
	}
	fmt.Fprintf(r.out, "  Address: %s\n", view.Address)
	fmt.Fprintf(r.out, "  Network: %s\n", view.Network)
	fmt.Fprintf(r.out, "  Deployments: %d\n", view.NumDeployments)

	if view.TransactionHash != "" {
		fmt.Fprintln(r.out, "\nTransaction:")
		fmt.Fprintf(r.out, "  Hash: %s\n", view.TransactionHash)
		if view.BlockNumber != 0 {
			fmt.Fprintf(r.out, "  Block: %d\n", view.BlockNumber)
		}
	}

	if args, ok := view.Args.([]any); ok && len(args) > 0 {
		fmt.Fprintln(r.out, "\nConstructor Arguments:")
		for i, arg := range args {
			fmt.Fprintf(r.out, "  [%d] %v\n", i, arg)
		}
	}

	if view.DeployedAt != nil {
		fmt.Fprintf(r.out, "\nDeployed at: %s\n", view.DeployedAt.Format(time.RFC3339))
	}

	if view.OnChain != nil {
		fmt.Fprintln(r.out)
		if *view.OnChain {
			fmt.Fprintln(r.out, FormatSuccess("Code found at address"))
		} else {
			fmt.Fprintln(r.out, FormatError("Not on chain: "+view.OnChainReason))
		}
	}
}
