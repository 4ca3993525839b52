package artifacts

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/trebuchet-org/deploykit/internal/domain"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
	"github.com/trebuchet-org/deploykit/internal/domain/models"
)

// Repository indexes the compiled artifacts of the project by contract name
type Repository struct {
	dir       string
	artifacts map[string][]*models.Artifact
	log       *slog.Logger
	mu        sync.RWMutex
	indexed   bool
}

// NewRepository creates a repository over the configured artifacts dir
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return NewRepositoryAt(cfg.ArtifactsDir, log)
}

// NewRepositoryAt creates a repository over dir
func NewRepositoryAt(dir string, log *slog.Logger) *Repository {
	return &Repository{
		dir:       dir,
		artifacts: make(map[string][]*models.Artifact),
		log:       log,
	}
}

// Index walks the artifacts directory once
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}
	r.artifacts = make(map[string][]*models.Artifact)

	if _, err := os.Stat(r.dir); os.IsNotExist(err) {
		return fmt.Errorf("artifacts directory %s not found, compile the contracts first", r.dir)
	}

	err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}
		r.processArtifact(path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.indexed = true
	return nil
}

func (r *Repository) processArtifact(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		r.log.Debug("skipping unreadable artifact", "path", path, "error", err)
		return
	}
	artifact, err := models.ParseArtifact(data)
	if err != nil {
		// not every json file under artifacts is a contract
		return
	}
	if !artifact.HasBytecode() {
		return
	}
	artifact.Path, _ = filepath.Rel(r.dir, path)
	r.artifacts[artifact.Name] = append(r.artifacts[artifact.Name], artifact)
	r.log.Debug("indexed artifact", "name", artifact.Name, "path", artifact.Path)
}

// GetArtifact returns the artifact compiled for the contract name. A name
// defined by several sources must be qualified as "Source.sol:Name".
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	source, contract := "", name
	if i := strings.LastIndex(name, ":"); i >= 0 {
		source, contract = name[:i], name[i+1:]
	}

	candidates := r.artifacts[contract]
	if source != "" {
		candidates = slices.DeleteFunc(slices.Clone(candidates), func(a *models.Artifact) bool {
			return a.SourceName != source && !strings.HasSuffix(a.SourceName, "/"+source)
		})
	}

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("artifact %s: %w", name, domain.ErrContractNotFound)
	case 1:
		return candidates[0], nil
	default:
		sources := make([]string, len(candidates))
		for i, a := range candidates {
			sources[i] = a.SourceName
		}
		return nil, fmt.Errorf("artifact %s is ambiguous, qualify it with one of %s", name, strings.Join(sources, ", "))
	}
}

// GetABI returns the parsed ABI of the contract name
func (r *Repository) GetABI(ctx context.Context, name string) (*abi.ABI, error) {
	artifact, err := r.GetArtifact(ctx, name)
	if err != nil {
		return nil, err
	}
	parsed, err := abi.JSON(strings.NewReader(string(artifact.ABI)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", name, err)
	}
	return &parsed, nil
}

// Names returns the indexed contract names, sorted
func (r *Repository) Names() ([]string, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.artifacts))
	for name := range r.artifacts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
