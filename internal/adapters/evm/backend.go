package evm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/deploykit/internal/adapters/accounts"
	"github.com/trebuchet-org/deploykit/internal/domain"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
	"github.com/trebuchet-org/deploykit/internal/domain/models"
	"github.com/trebuchet-org/deploykit/internal/typeddeploy"
)

// Chain is the node connection the backend needs. *ethclient.Client
// satisfies it.
type Chain interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// ArtifactSource looks up compiled contracts by name
type ArtifactSource interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
}

// Store persists deployments of the active network
type Store interface {
	EnsureNetwork(ctx context.Context, network string, chainID uint64) error
	GetDeployment(ctx context.Context, network, name string) (*models.Deployment, error)
	SaveDeployment(ctx context.Context, d *models.Deployment) error
}

// ErrReverted is returned when a mined transaction has a failed status
var ErrReverted = errors.New("transaction reverted")

// Backend implements typeddeploy.Backend against an EVM node
type Backend struct {
	network   *config.Network
	client    Chain
	artifacts ArtifactSource
	store     Store
	keyring   *accounts.Keyring
	log       *slog.Logger

	// gasPrice applies to transactions that don't set one
	gasPrice *big.Int
	// mine waits for a transaction receipt
	mine func(ctx context.Context, client Chain, tx *types.Transaction) (*types.Receipt, error)

	mu       *sync.Mutex
	verified *bool
}

// NewBackend creates a backend for the active network
func NewBackend(
	cfg *config.RuntimeConfig,
	client Chain,
	artifacts ArtifactSource,
	store Store,
	keyring *accounts.Keyring,
	log *slog.Logger,
) *Backend {
	verified := false
	return &Backend{
		network:   cfg.Network,
		client:    client,
		artifacts: artifacts,
		store:     store,
		keyring:   keyring,
		log:       log.With("component", "evm", "network", cfg.Network.Name),
		mine: func(ctx context.Context, client Chain, tx *types.Transaction) (*types.Receipt, error) {
			return bind.WaitMined(ctx, client, tx)
		},
		mu:       &sync.Mutex{},
		verified: &verified,
	}
}

// WithGasPrice returns a backend sharing the connection that sends
// transactions at gasPrice unless they set their own.
func (b *Backend) WithGasPrice(gasPrice *big.Int) typeddeploy.Backend {
	clone := *b
	clone.gasPrice = gasPrice
	return &clone
}

// checkChain verifies once that the node serves the configured chain and
// initializes the network in the store.
func (b *Backend) checkChain(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if *b.verified {
		return nil
	}

	id, err := b.client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	if b.network.ChainID != 0 && id.Uint64() != b.network.ChainID {
		return fmt.Errorf("chain ID mismatch: expected %d, got %d: %w", b.network.ChainID, id.Uint64(), domain.ErrNetworkMismatch)
	}
	if err := b.store.EnsureNetwork(ctx, b.network.Name, id.Uint64()); err != nil {
		return err
	}

	*b.verified = true
	return nil
}

func (b *Backend) transactOpts(ctx context.Context, opts typeddeploy.TxOptions) (*bind.TransactOpts, error) {
	from := opts.From
	if from == "" {
		addrs := b.keyring.Addresses()
		if len(addrs) == 0 {
			return nil, fmt.Errorf("no sender for %s: %w", b.network.Name, domain.ErrNoSigner)
		}
		from = addrs[0].Hex()
	}

	key, err := b.keyring.Key(from)
	if err != nil {
		return nil, err
	}

	tx, err := bind.NewKeyedTransactorWithChainID(key, new(big.Int).SetUint64(b.network.ChainID))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	tx.Context = ctx
	tx.GasLimit = opts.GasLimit
	tx.Value = opts.Value
	tx.GasPrice = b.gasPrice
	if opts.GasPrice != nil {
		tx.GasPrice = opts.GasPrice
	}
	return tx, nil
}

// Deploy deploys the artifact of req under name and records it
func (b *Backend) Deploy(ctx context.Context, name string, req typeddeploy.DeployRequest) (*models.DeployResult, error) {
	if err := b.checkChain(ctx); err != nil {
		return nil, err
	}

	artifact, err := b.artifacts.GetArtifact(ctx, req.Contract)
	if err != nil {
		return nil, err
	}
	if !artifact.IsLinked() {
		return nil, fmt.Errorf("artifact %s has unlinked libraries", req.Contract)
	}
	parsed, err := parseABI(artifact.ABI)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", req.Contract, err)
	}
	argsJSON, err := json.Marshal(req.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to encode arguments of %s: %w", name, err)
	}

	previous, err := b.store.GetDeployment(ctx, b.network.Name, name)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if previous != nil && req.SkipIfAlreadyDeployed &&
		previous.Bytecode == artifact.Bytecode && sameJSON(previous.Args, argsJSON) {
		if req.Log {
			b.log.Info("reusing deployment", "name", name, "address", previous.Address)
		}
		return &models.DeployResult{Deployment: previous, Newly: false}, nil
	}

	opts, err := b.transactOpts(ctx, req.TxOptions)
	if err != nil {
		return nil, err
	}

	address, tx, _, err := bind.DeployContract(opts, *parsed, common.FromHex(artifact.Bytecode), b.client, req.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", name, err)
	}
	if req.Log {
		b.log.Info("deploying", "name", name, "contract", req.Contract, "tx", tx.Hash().Hex())
	}

	receipt, err := b.wait(ctx, tx, opts.From)
	if err != nil {
		return nil, fmt.Errorf("deploy %s: %w", name, err)
	}

	numDeployments := 1
	if previous != nil {
		numDeployments = previous.NumDeployments + 1
	}
	deployment := &models.Deployment{
		Name:            name,
		Network:         b.network.Name,
		Address:         address.Hex(),
		ABI:             artifact.ABI,
		TransactionHash: tx.Hash().Hex(),
		Receipt:         receipt,
		Args:            argsJSON,
		NumDeployments:  numDeployments,
		Bytecode:        artifact.Bytecode,
		Contract:        req.Contract,
		DeployedAt:      time.Now().UTC(),
	}
	if err := b.store.SaveDeployment(ctx, deployment); err != nil {
		return nil, fmt.Errorf("failed to record deployment %s: %w", name, err)
	}

	if req.Log {
		b.log.Info("deployed", "name", name, "address", deployment.Address, "gasUsed", receipt.GasUsed)
	}
	return &models.DeployResult{Deployment: deployment, Newly: true}, nil
}

// Execute sends a transaction calling method on the deployment name
func (b *Backend) Execute(ctx context.Context, name string, opts typeddeploy.TxOptions, method string, args ...any) (*models.Receipt, error) {
	if err := b.checkChain(ctx); err != nil {
		return nil, err
	}
	contract, err := b.bound(ctx, name)
	if err != nil {
		return nil, err
	}
	topts, err := b.transactOpts(ctx, opts)
	if err != nil {
		return nil, err
	}

	tx, err := contract.Transact(topts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", name, method, err)
	}
	if opts.Log {
		b.log.Info("executing", "name", name, "method", method, "tx", tx.Hash().Hex())
	}

	receipt, err := b.wait(ctx, tx, topts.From)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", name, method, err)
	}
	return receipt, nil
}

// Read calls a view function on the deployment name
func (b *Backend) Read(ctx context.Context, name string, opts typeddeploy.CallOptions, method string, args ...any) ([]any, error) {
	contract, err := b.bound(ctx, name)
	if err != nil {
		return nil, err
	}

	call := &bind.CallOpts{Context: ctx, BlockNumber: opts.BlockNumber}
	if opts.From != "" {
		call.From = common.HexToAddress(opts.From)
	}

	var out []any
	if err := contract.Call(call, &out, method, args...); err != nil {
		return nil, fmt.Errorf("%s.%s: %w", name, method, err)
	}
	return out, nil
}

// Get returns the recorded deployment name on the active network
func (b *Backend) Get(ctx context.Context, name string) (*models.Deployment, error) {
	return b.store.GetDeployment(ctx, b.network.Name, name)
}

func (b *Backend) bound(ctx context.Context, name string) (*bind.BoundContract, error) {
	d, err := b.store.GetDeployment(ctx, b.network.Name, name)
	if err != nil {
		return nil, err
	}
	parsed, err := parseABI(d.ABI)
	if err != nil {
		return nil, fmt.Errorf("deployment %s: %w", name, err)
	}
	return bind.NewBoundContract(common.HexToAddress(d.Address), *parsed, b.client, b.client, b.client), nil
}

func (b *Backend) wait(ctx context.Context, tx *types.Transaction, from common.Address) (*models.Receipt, error) {
	r, err := b.mine(ctx, b.client, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", tx.Hash().Hex(), err)
	}
	if r.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%s: %w", tx.Hash().Hex(), ErrReverted)
	}

	receipt := &models.Receipt{
		TransactionHash: r.TxHash.Hex(),
		BlockHash:       r.BlockHash.Hex(),
		GasUsed:         r.GasUsed,
		From:            from.Hex(),
		Status:          r.Status,
	}
	if r.BlockNumber != nil {
		receipt.BlockNumber = r.BlockNumber.Uint64()
	}
	if r.ContractAddress != (common.Address{}) {
		receipt.ContractAddress = r.ContractAddress.Hex()
	}
	return receipt, nil
}

func parseABI(raw json.RawMessage) (*abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("invalid ABI: %w", err)
	}
	return &parsed, nil
}

func sameJSON(a, b []byte) bool {
	var ca, cb bytes.Buffer
	if json.Compact(&ca, a) != nil || json.Compact(&cb, b) != nil {
		return false
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
}

// Ensure the backend implements the interface
var _ typeddeploy.Backend = (*Backend)(nil)
