package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/deploykit/internal/domain"
	"github.com/trebuchet-org/deploykit/internal/domain/config"
)

// ValidateAccounts resolves named roles and checks they are addresses
type ValidateAccounts struct {
	provider NamedAccountProvider
	network  *config.Network
}

// NewValidateAccounts creates a new ValidateAccounts use case
func NewValidateAccounts(provider NamedAccountProvider, cfg *config.RuntimeConfig) *ValidateAccounts {
	return &ValidateAccounts{
		provider: provider,
		network:  cfg.Network,
	}
}

// Run returns the requested roles in request order with duplicates
// collapsed. If any role is missing or not an address nothing is returned.
func (uc *ValidateAccounts) Run(ctx context.Context, roles ...string) (domain.NamedAccounts, error) {
	all, err := uc.provider.GetNamedAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get named accounts: %w", err)
	}

	roles = lo.Uniq(roles)
	accounts := make(domain.NamedAccounts, 0, len(roles))
	for _, role := range roles {
		value, ok := all[role]
		if !ok || !isAddress(value) {
			return nil, &domain.InvalidAccountError{
				Role:    role,
				Value:   value,
				Network: uc.networkName(),
			}
		}
		accounts = append(accounts, domain.NamedAccount{Role: role, Address: value})
	}

	return accounts, nil
}

func (uc *ValidateAccounts) networkName() string {
	if uc.network == nil {
		return "unknown"
	}
	return uc.network.Name
}

// isAddress accepts 20 byte hex with or without 0x. Mixed case input must
// carry a valid EIP-55 checksum; all lower or all upper case is unchecked.
func isAddress(s string) bool {
	if !common.IsHexAddress(s) {
		return false
	}
	digits := s
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		digits = s[2:]
	}
	if digits == strings.ToLower(digits) || digits == strings.ToUpper(digits) {
		return true
	}
	mixed, err := common.NewMixedcaseAddressFromString("0x" + digits)
	if err != nil {
		return false
	}
	return mixed.ValidChecksum()
}
