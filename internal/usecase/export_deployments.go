package usecase

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/trebuchet-org/deploykit/internal/domain"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
)

// ExportResult summarizes a written durable artifact
type ExportResult struct {
	Path      string
	ChainIDs  []string
	Contracts map[string]map[string]string
}

// ExportDeployments runs the raw export for all networks and writes the
// flattened per-chain artifact.
type ExportDeployments struct {
	cfg      *config.RuntimeConfig
	exporter NetworkExporter
	files    ArtifactFiles
	sink     ProgressSink
	log      *slog.Logger
}

// NewExportDeployments creates a new ExportDeployments use case
func NewExportDeployments(
	cfg *config.RuntimeConfig,
	exporter NetworkExporter,
	files ArtifactFiles,
	sink ProgressSink,
	log *slog.Logger,
) *ExportDeployments {
	return &ExportDeployments{
		cfg:      cfg,
		exporter: exporter,
		files:    files,
		sink:     sink,
		log:      log.With("component", "export"),
	}
}

// Run executes the export. The temporary raw artifact is removed on every
// exit path.
func (uc *ExportDeployments) Run(ctx context.Context) (*ExportResult, error) {
	tmpPath := uc.cfg.TempExportPath()
	defer uc.removeTemp(tmpPath)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "export",
		Message: "Exporting deployments from all networks",
		Spinner: true,
	})

	if err := uc.exporter.ExportAll(ctx, tmpPath); err != nil {
		return nil, &domain.ExportError{Path: tmpPath, Reason: "export-all failed", Err: err}
	}

	data, err := uc.files.ReadFile(tmpPath)
	if err != nil {
		return nil, &domain.ExportError{Path: tmpPath, Reason: "cannot read raw export", Err: err}
	}

	raw, err := domain.ParseRawExport(data)
	if err != nil {
		return nil, withExportPath(err, tmpPath)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "flatten",
		Message: "Flattening export",
		Spinner: true,
	})

	flat, err := raw.Flatten(uc.cfg.LocalChainID)
	if err != nil {
		return nil, withExportPath(err, tmpPath)
	}

	out, err := flat.Marshal()
	if err != nil {
		return nil, &domain.ExportError{Path: uc.cfg.ExportPath, Reason: "cannot serialize", Err: err}
	}

	if err := uc.files.WriteFile(uc.cfg.ExportPath, out); err != nil {
		return nil, &domain.IOError{Op: "write", Path: uc.cfg.ExportPath, Err: err}
	}

	result := &ExportResult{
		Path:      uc.cfg.ExportPath,
		ChainIDs:  flat.ChainIDs(),
		Contracts: make(map[string]map[string]string, len(flat)),
	}
	for _, chainID := range result.ChainIDs {
		result.Contracts[chainID] = flat.Contracts(chainID)
	}

	uc.log.Info("wrote export", "path", uc.cfg.ExportPath, "chains", len(result.ChainIDs))
	return result, nil
}

func (uc *ExportDeployments) removeTemp(path string) {
	if err := uc.files.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		uc.log.Warn("failed to remove temporary export", "path", path, "error", err)
	}
}

func withExportPath(err error, path string) error {
	var exportErr *domain.ExportError
	if errors.As(err, &exportErr) && exportErr.Path == "" {
		exportErr.Path = path
	}
	return err
}
