package models

import (
	"encoding/json"
	"time"
)

// Deployment is the record kept for a named deployment on one network.
// The JSON layout matches the hardhat-deploy deployments folder so existing
// tooling can read it.
type Deployment struct {
	// Name is the deployment name chosen by the recipe author, e.g. "USDC"
	Name string `json:"-"`
	// Network the deployment lives on (directory name in the store)
	Network string `json:"-"`

	Address         string          `json:"address"`
	ABI             json.RawMessage `json:"abi"`
	TransactionHash string          `json:"transactionHash,omitempty"`
	Receipt         *Receipt        `json:"receipt,omitempty"`
	Args            json.RawMessage `json:"args,omitempty"`
	NumDeployments  int             `json:"numDeployments"`
	Bytecode        string          `json:"bytecode,omitempty"`
	// Contract is the artifact the deployment was created from
	Contract   string    `json:"contractName,omitempty"`
	DeployedAt time.Time `json:"deployedAt,omitempty"`
}

// Receipt is the subset of a transaction receipt persisted with a deployment.
type Receipt struct {
	TransactionHash string `json:"transactionHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	BlockHash       string `json:"blockHash,omitempty"`
	GasUsed         uint64 `json:"gasUsed"`
	ContractAddress string `json:"contractAddress,omitempty"`
	From            string `json:"from,omitempty"`
	Status          uint64 `json:"status"`
}

// DeployResult is returned by a deploy call.
type DeployResult struct {
	Deployment *Deployment
	// Newly is false when an identical deployment already existed and was reused
	Newly bool
}
