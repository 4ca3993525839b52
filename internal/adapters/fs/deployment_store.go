package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/trebuchet-org/deploykit/internal/domain"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
	"github.com/trebuchet-org/deploykit/internal/domain/models"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// ChainIDFile marks a network directory and holds its chain id
const ChainIDFile = ".chainId"

// DeploymentStore keeps deployments in the hardhat-deploy layout:
//
//	deployments/<network>/.chainId
//	deployments/<network>/<Name>.json
type DeploymentStore struct {
	rootDir string
	mu      sync.RWMutex
}

// NewDeploymentStore creates a store rooted at the configured deployments dir
func NewDeploymentStore(cfg *config.RuntimeConfig) *DeploymentStore {
	return &DeploymentStore{rootDir: cfg.DeploymentsDir}
}

// NewDeploymentStoreAt creates a store rooted at dir
func NewDeploymentStoreAt(dir string) *DeploymentStore {
	return &DeploymentStore{rootDir: dir}
}

func (s *DeploymentStore) networkDir(network string) string {
	return filepath.Join(s.rootDir, network)
}

// EnsureNetwork creates the network directory and records its chain id.
// A directory already bound to another chain id is an error.
func (s *DeploymentStore) EnsureNetwork(ctx context.Context, network string, chainID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	want := strconv.FormatUint(chainID, 10)
	existing, err := s.readChainID(network)
	switch {
	case err == nil && existing != want:
		return fmt.Errorf("%s is recorded with chain %s, node reports %s: %w", network, existing, want, domain.ErrNetworkMismatch)
	case err == nil:
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	if err := os.MkdirAll(s.networkDir(network), 0755); err != nil {
		return fmt.Errorf("failed to create network directory: %w", err)
	}
	return os.WriteFile(filepath.Join(s.networkDir(network), ChainIDFile), []byte(want), 0644)
}

// ChainID returns the chain id recorded for network
func (s *DeploymentStore) ChainID(ctx context.Context, network string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, err := s.readChainID(network)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("network %s: %w", network, domain.ErrNotFound)
	}
	return id, err
}

func (s *DeploymentStore) readChainID(network string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.networkDir(network), ChainIDFile))
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(string(data))
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return "", fmt.Errorf("%s/%s: %w", network, ChainIDFile, domain.ErrInvalidChainID)
	}
	return id, nil
}

// GetDeployment loads the named deployment of network
func (s *DeploymentStore) GetDeployment(ctx context.Context, network, name string) (*models.Deployment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(network, name)
}

func (s *DeploymentStore) load(network, name string) (*models.Deployment, error) {
	data, err := os.ReadFile(filepath.Join(s.networkDir(network), name+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("deployment %s on %s: %w", name, network, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	var d models.Deployment
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse deployment %s on %s: %w", name, network, err)
	}
	d.Name = name
	d.Network = network
	return &d, nil
}

// ListDeployments returns the deployments of network sorted by name
func (s *DeploymentStore) ListDeployments(ctx context.Context, network string) ([]*models.Deployment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.networkDir(network))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	slices.Sort(names)

	deployments := make([]*models.Deployment, 0, len(names))
	for _, name := range names {
		d, err := s.load(network, name)
		if err != nil {
			return nil, err
		}
		deployments = append(deployments, d)
	}
	return deployments, nil
}

// SaveDeployment writes the deployment file. The network must exist.
func (s *DeploymentStore) SaveDeployment(ctx context.Context, d *models.Deployment) error {
	if d.Name == "" || d.Network == "" {
		return fmt.Errorf("deployment name and network are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.readChainID(d.Network); err != nil {
		return fmt.Errorf("network %s is not initialized: %w", d.Network, err)
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployment: %w", err)
	}
	path := filepath.Join(s.networkDir(d.Network), d.Name+".json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Networks returns the network directories carrying a chain id, sorted
func (s *DeploymentStore) Networks(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.rootDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var networks []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.rootDir, e.Name(), ChainIDFile)); err == nil {
			networks = append(networks, e.Name())
		}
	}
	slices.Sort(networks)
	return networks, nil
}

// Ensure the store implements the interface
var _ usecase.DeploymentStore = (*DeploymentStore)(nil)
