package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/deploykit/internal/domain"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// Exporter writes the raw multi-network export of a deployment store
type Exporter struct {
	store *DeploymentStore
	log   *slog.Logger
}

// NewExporter creates a new exporter over store
func NewExporter(store *DeploymentStore, log *slog.Logger) *Exporter {
	return &Exporter{store: store, log: log}
}

// ExportAll writes {chainId: {network: {name, chainId, contracts}}} to path
func (e *Exporter) ExportAll(ctx context.Context, path string) error {
	networks, err := e.store.Networks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list networks: %w", err)
	}

	out := make(map[string]map[string]domain.ExportedNetwork)
	for _, network := range networks {
		if err := ctx.Err(); err != nil {
			return err
		}

		chainID, err := e.store.ChainID(ctx, network)
		if err != nil {
			return err
		}
		deployments, err := e.store.ListDeployments(ctx, network)
		if err != nil {
			return fmt.Errorf("failed to list deployments of %s: %w", network, err)
		}

		record := domain.ExportedNetwork{
			Name:      network,
			ChainID:   chainID,
			Contracts: make(map[string]domain.ExportedContract, len(deployments)),
		}
		for _, d := range deployments {
			record.Contracts[d.Name] = domain.ExportedContract{Address: d.Address, ABI: d.ABI}
		}

		if out[chainID] == nil {
			out[chainID] = make(map[string]domain.ExportedNetwork)
		}
		out[chainID][network] = record
		e.log.Debug("exported network", "network", network, "chainId", chainID, "contracts", len(deployments))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Ensure the exporter implements the interface
var _ usecase.NetworkExporter = (*Exporter)(nil)
