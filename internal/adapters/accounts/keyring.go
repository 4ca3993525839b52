package accounts

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/deploykit/internal/config"
	"github.com/trebuchet-org/deploykit/internal/domain"
	domainconfig "github.com/trebuchet-org/deploykit/internal/domain/config"
)

// Keyring holds the private keys available on the active network, in
// configuration order. Account index N refers to the Nth key.
type Keyring struct {
	keys  map[common.Address]*ecdsa.PrivateKey
	order []common.Address
}

// NewKeyring loads the keys of the active network. Without network
// accounts it falls back to DEPLOYER_PRIVATE_KEY.
func NewKeyring(cfg *domainconfig.RuntimeConfig) (*Keyring, error) {
	k := &Keyring{keys: make(map[common.Address]*ecdsa.PrivateKey)}
	if cfg.Network == nil {
		return k, nil
	}

	for i, raw := range cfg.Network.Accounts {
		key, err := config.ParsePrivateKey(raw)
		if err != nil {
			return nil, &domain.ConfigError{
				Field:  fmt.Sprintf("networks.%s.accounts[%d]", cfg.Network.Name, i),
				Reason: "expected a 32 byte hex private key",
				Err:    err,
			}
		}
		k.add(key)
	}

	if len(k.order) == 0 {
		key, err := config.DeployerKey(false)
		if err != nil {
			return nil, err
		}
		if key != nil {
			k.add(key)
		}
	}
	return k, nil
}

// NewKeyringFromKeys builds a keyring from explicit keys
func NewKeyringFromKeys(keys ...*ecdsa.PrivateKey) *Keyring {
	k := &Keyring{keys: make(map[common.Address]*ecdsa.PrivateKey)}
	for _, key := range keys {
		k.add(key)
	}
	return k
}

func (k *Keyring) add(key *ecdsa.PrivateKey) {
	addr := crypto.PubkeyToAddress(key.PublicKey)
	if _, ok := k.keys[addr]; ok {
		return
	}
	k.keys[addr] = key
	k.order = append(k.order, addr)
}

// Addresses returns the signer addresses in order
func (k *Keyring) Addresses() []common.Address {
	return append([]common.Address(nil), k.order...)
}

// Len is the number of keys
func (k *Keyring) Len() int { return len(k.order) }

// Key returns the private key of addr
func (k *Keyring) Key(addr string) (*ecdsa.PrivateKey, error) {
	if !common.IsHexAddress(addr) {
		return nil, fmt.Errorf("%q: %w", addr, domain.ErrInvalidAddress)
	}
	key, ok := k.keys[common.HexToAddress(addr)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", strings.ToLower(addr), domain.ErrNoSigner)
	}
	return key, nil
}
