package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidChainID is returned when a chain ID is invalid
	ErrInvalidChainID = errors.New("invalid chain ID")

	// ErrNetworkMismatch is returned when the connected node reports another chain
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrContractNotFound is returned when a compiled artifact can't be found
	ErrContractNotFound = errors.New("contract not found")

	// ErrNoSigner is returned when no private key is configured for a sender
	ErrNoSigner = errors.New("no signer configured")
)

// ConfigError reports malformed task input or configuration.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("invalid %s", e.Field)
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// InvalidAccountError is returned when a named role does not resolve to an address.
type InvalidAccountError struct {
	Role    string
	Value   string
	Network string
}

func (e *InvalidAccountError) Error() string {
	return fmt.Sprintf("invalid named account for network %s: %q (%s)", e.Network, e.Role, e.Value)
}

func (e *InvalidAccountError) Unwrap() error { return ErrInvalidAddress }

// DeploymentError wraps failures of the on-chain deploy step.
type DeploymentError struct {
	Network string
	Recipe  string
	Err     error
}

func (e *DeploymentError) Error() string {
	if e.Recipe != "" {
		return fmt.Sprintf("deployment failed on %s (recipe %s): %v", e.Network, e.Recipe, e.Err)
	}
	return fmt.Sprintf("deployment failed on %s: %v", e.Network, e.Err)
}

func (e *DeploymentError) Unwrap() error { return e.Err }

// ExportError is returned when the raw export artifact is missing or malformed.
type ExportError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ExportError) Error() string {
	msg := fmt.Sprintf("export %s", e.Path)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExportError) Unwrap() error { return e.Err }

// IOError is returned when the durable artifact can't be written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
