package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math/big"

	"github.com/trebuchet-org/deploykit/internal/domain"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
	"github.com/trebuchet-org/deploykit/internal/domain/units"
)

// DeployAndExportParams contains parameters for DeployAndExport
type DeployAndExportParams struct {
	// Tags filter the deploy recipes; empty runs all of them
	Tags []string
	// GasPrice is a decimal amount that must end with "gwei"
	GasPrice string
}

// DeployAndExportResult contains the result of a deploy and export run
type DeployAndExportResult struct {
	GasPrice *big.Int
	Run      *RunResult
	Export   *ExportResult
}

// DeployAndExport runs the deploy recipes on the active network and then
// exports the deployments of every network.
type DeployAndExport struct {
	cfg    *config.RuntimeConfig
	runner DeploymentRunner
	export *ExportDeployments
	sink   ProgressSink
	log    *slog.Logger
}

// NewDeployAndExport creates a new DeployAndExport use case
func NewDeployAndExport(
	cfg *config.RuntimeConfig,
	runner DeploymentRunner,
	export *ExportDeployments,
	sink ProgressSink,
	log *slog.Logger,
) *DeployAndExport {
	return &DeployAndExport{
		cfg:    cfg,
		runner: runner,
		export: export,
		sink:   sink,
		log:    log.With("component", "deploy"),
	}
}

// Run executes the use case. The gas price is validated before anything is
// sent; a failed deployment is not retried and skips the export.
func (uc *DeployAndExport) Run(ctx context.Context, params DeployAndExportParams) (*DeployAndExportResult, error) {
	gasPrice, err := units.ParseGasPrice(params.GasPrice)
	if err != nil {
		return nil, err
	}

	network := "unknown"
	if uc.cfg.Network != nil {
		network = uc.cfg.Network.Name
	}
	uc.log.Debug("running deploy recipes", "network", network, "tags", params.Tags, "gasPrice", units.Format(gasPrice, units.GWei))

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "deploy",
		Message: "Deploying to " + network,
		Spinner: true,
	})

	runResult, err := uc.runner.Run(ctx, RunParams{Tags: params.Tags, GasPrice: gasPrice})
	if err != nil {
		var depErr *domain.DeploymentError
		if errors.As(err, &depErr) {
			if depErr.Network == "" {
				depErr.Network = network
			}
			return nil, depErr
		}
		return nil, &domain.DeploymentError{Network: network, Err: err}
	}

	exportResult, err := uc.export.Run(ctx)
	if err != nil {
		return nil, err
	}

	return &DeployAndExportResult{GasPrice: gasPrice, Run: runResult, Export: exportResult}, nil
}
