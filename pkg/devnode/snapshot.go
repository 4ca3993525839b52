// Package devnode drives the state of a local development node (anvil or
// hardhat) through its evm_snapshot and evm_revert methods.
package devnode

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
)

// DefaultURL is where a local dev node listens by default
const DefaultURL = "http://127.0.0.1:8545"

// Snapshotter takes and restores node snapshots
type Snapshotter struct {
	client *rpc.Client
}

// Dial connects a snapshotter to the node at url
func Dial(ctx context.Context, url string) (*Snapshotter, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	return &Snapshotter{client: client}, nil
}

// NewSnapshotter wraps an existing RPC client
func NewSnapshotter(client *rpc.Client) *Snapshotter {
	return &Snapshotter{client: client}
}

// Take saves the current chain state and returns its id
func (s *Snapshotter) Take(ctx context.Context) (string, error) {
	var id string
	if err := s.client.CallContext(ctx, &id, "evm_snapshot"); err != nil {
		return "", fmt.Errorf("evm_snapshot: %w", err)
	}
	return id, nil
}

// Restore reverts the chain to snapshot id. The node drops id and every
// snapshot taken after it.
func (s *Snapshotter) Restore(ctx context.Context, id string) error {
	var ok bool
	if err := s.client.CallContext(ctx, &ok, "evm_revert", id); err != nil {
		return fmt.Errorf("evm_revert %s: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("evm_revert %s: snapshot not found", id)
	}
	return nil
}

// Client returns the underlying RPC client
func (s *Snapshotter) Client() *rpc.Client { return s.client }

// Close closes the connection
func (s *Snapshotter) Close() { s.client.Close() }
