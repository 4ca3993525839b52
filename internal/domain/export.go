package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// DefaultLocalChainID is the chain id of the in-process hardhat/anvil node.
const DefaultLocalChainID = "31337"

// ExportedContract is a contract entry of the raw export.
type ExportedContract struct {
	Address string          `json:"address"`
	ABI     json.RawMessage `json:"abi,omitempty"`
}

// ExportedNetwork is the record written for one network in the raw export.
type ExportedNetwork struct {
	Name      string                      `json:"name"`
	ChainID   string                      `json:"chainId"`
	Contracts map[string]ExportedContract `json:"contracts"`
}

// RawExport is the multi-network export: chain id -> network name -> record.
// Records are kept raw so metadata the exporter adds survives flattening.
type RawExport map[string]map[string]json.RawMessage

// FlattenedExport is chain id -> record, where record["contracts"] maps
// contract names to addresses and every other key is network metadata.
type FlattenedExport map[string]map[string]any

// ParseRawExport decodes a raw export artifact.
func ParseRawExport(data []byte) (RawExport, error) {
	var raw RawExport
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ExportError{Reason: "empty artifact"}
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ExportError{Reason: "malformed artifact", Err: err}
	}
	if raw == nil {
		return nil, &ExportError{Reason: "artifact is not an object"}
	}
	return raw, nil
}

// Flatten collapses the network indirection, reduces every contract to its
// address and drops localChainID.
//
// A chain id mapped to more than one network is rejected rather than
// resolved by key order.
func (raw RawExport) Flatten(localChainID string) (FlattenedExport, error) {
	out := make(FlattenedExport, len(raw))
	for _, chainID := range slices.Sorted(maps.Keys(raw)) {
		if chainID == localChainID {
			continue
		}
		names := slices.Sorted(maps.Keys(raw[chainID]))
		if len(names) == 0 {
			continue
		}
		if len(names) > 1 {
			return nil, &ExportError{
				Reason: fmt.Sprintf("chain %s is exported by multiple networks (%s)", chainID, strings.Join(names, ", ")),
			}
		}
		network := names[0]

		flat, err := flattenRecord(raw[chainID][network])
		if err != nil {
			return nil, &ExportError{
				Reason: fmt.Sprintf("chain %s network %s", chainID, network),
				Err:    err,
			}
		}
		out[chainID] = flat
	}
	return out, nil
}

func flattenRecord(record json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(record))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("record is not an object: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("record is null")
	}

	contracts := map[string]string{}
	if rawContracts, ok := fields["contracts"]; ok && rawContracts != nil {
		entries, ok := rawContracts.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("contracts is not an object")
		}
		for name, entry := range entries {
			obj, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("contract %s is not an object", name)
			}
			addr, ok := obj["address"].(string)
			if !ok || addr == "" {
				return nil, fmt.Errorf("contract %s has no address", name)
			}
			contracts[name] = addr
		}
	}
	fields["contracts"] = contracts
	return fields, nil
}

// Marshal serializes the export with sorted keys at every level and two
// space indentation. Identical input yields identical bytes.
func (f FlattenedExport) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if f == nil {
		f = FlattenedExport{}
	}
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ChainIDs returns the exported chain ids in lexicographic order.
func (f FlattenedExport) ChainIDs() []string {
	return slices.Sorted(maps.Keys(f))
}

// Contracts returns the contract -> address map of one chain.
func (f FlattenedExport) Contracts(chainID string) map[string]string {
	rec, ok := f[chainID]
	if !ok {
		return nil
	}
	switch c := rec["contracts"].(type) {
	case map[string]string:
		return c
	case map[string]any:
		return lo.MapValues(c, func(v any, _ string) string {
			s, _ := v.(string)
			return s
		})
	}
	return nil
}
