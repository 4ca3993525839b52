package usecase_test

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
	"github.com/trebuchet-org/deploykit/internal/domain/models"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// MockNamedAccountProvider is a mock implementation of NamedAccountProvider
type MockNamedAccountProvider struct {
	mock.Mock
}

func (m *MockNamedAccountProvider) GetNamedAccounts(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// MockDeploymentRunner is a mock implementation of DeploymentRunner
type MockDeploymentRunner struct {
	mock.Mock
}

func (m *MockDeploymentRunner) Run(ctx context.Context, params usecase.RunParams) (*usecase.RunResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RunResult), args.Error(1)
}

// MockNetworkExporter is a mock implementation of NetworkExporter
type MockNetworkExporter struct {
	mock.Mock
}

func (m *MockNetworkExporter) ExportAll(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

// MockDeploymentStore is a mock implementation of DeploymentStore
type MockDeploymentStore struct {
	mock.Mock
}

func (m *MockDeploymentStore) GetDeployment(ctx context.Context, network, name string) (*models.Deployment, error) {
	args := m.Called(ctx, network, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

func (m *MockDeploymentStore) ListDeployments(ctx context.Context, network string) ([]*models.Deployment, error) {
	args := m.Called(ctx, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Deployment), args.Error(1)
}

func (m *MockDeploymentStore) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	return m.Called(ctx, deployment).Error(0)
}

func (m *MockDeploymentStore) Networks(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) Names() []string {
	return m.Called().Get(0).([]string)
}

func (m *MockNetworkResolver) Resolve(ctx context.Context, name string) (*config.Network, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

// MockBlockchainChecker is a mock implementation of BlockchainChecker
type MockBlockchainChecker struct {
	mock.Mock
}

func (m *MockBlockchainChecker) CheckDeploymentExists(ctx context.Context, network *config.Network, address string) (bool, string, error) {
	args := m.Called(ctx, network, address)
	return args.Bool(0), args.String(1), args.Error(2)
}

// MockDeploymentSelector is a mock implementation of DeploymentSelector
type MockDeploymentSelector struct {
	mock.Mock
}

func (m *MockDeploymentSelector) SelectDeployment(ctx context.Context, deployments []*models.Deployment, prompt string) (*models.Deployment, error) {
	args := m.Called(ctx, deployments, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

// memFiles is an in-memory ArtifactFiles
type memFiles struct {
	mu        sync.Mutex
	files     map[string][]byte
	// writeErrs fails writes to the given paths
	writeErrs map[string]error
	removed   []string
}

func newMemFiles() *memFiles {
	return &memFiles{files: make(map[string][]byte), writeErrs: make(map[string]error)}
}

func (m *memFiles) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (m *memFiles) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.writeErrs[path]; err != nil {
		return err
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *memFiles) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, path)
	if _, ok := m.files[path]; !ok {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	delete(m.files, path)
	return nil
}

func (m *memFiles) has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

// staticCatalog is a fixed RecipeCatalog
type staticCatalog []usecase.RecipeInfo

func (c staticCatalog) Recipes() []usecase.RecipeInfo { return c }

func testConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		ProjectRoot:  "/project",
		Network:      &config.Network{Name: "sepolia", ChainID: 11155111},
		ExportPath:   "/project/deployments.json",
		LocalChainID: "31337",
	}
}
