package config

import (
	"crypto/ecdsa"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/deploykit/internal/domain"
)

// DeployerKeyEnv holds the deployer private key used by local signers.
const DeployerKeyEnv = "DEPLOYER_PRIVATE_KEY"

// ParsePrivateKey parses a hex encoded secp256k1 key, with or without 0x.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	return crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
}

// DeployerKey returns the key from DEPLOYER_PRIVATE_KEY.
// With required set, a missing variable is an error.
func DeployerKey(required bool) (*ecdsa.PrivateKey, error) {
	raw, ok := os.LookupEnv(DeployerKeyEnv)
	if !ok || raw == "" {
		if required {
			return nil, &domain.ConfigError{
				Field:  DeployerKeyEnv,
				Reason: "error parsing .env file: variable is not set",
			}
		}
		return nil, nil
	}

	key, err := ParsePrivateKey(raw)
	if err != nil {
		// the key itself is never echoed back
		return nil, &domain.ConfigError{
			Field:  DeployerKeyEnv,
			Reason: "error parsing .env file: expected a 32 byte hex private key",
			Err:    err,
		}
	}
	return key, nil
}
