package blockchain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
)

// ProvideClient connects to the active network. The returned cleanup closes
// the connection.
func ProvideClient(ctx context.Context, cfg *config.RuntimeConfig) (*ethclient.Client, func(), error) {
	if cfg.Network == nil {
		return nil, nil, fmt.Errorf("no active network")
	}
	client, err := ethclient.DialContext(ctx, cfg.Network.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", cfg.Network.Name, err)
	}
	return client, client.Close, nil
}
