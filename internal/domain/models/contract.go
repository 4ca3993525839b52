package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Artifact is a compiled contract as found in the artifacts directory
type Artifact struct {
	// Name is the contract name, the selector bindings refer to
	Name       string          `json:"contractName"`
	SourceName string          `json:"sourceName,omitempty"`
	ABI        json.RawMessage `json:"abi"`
	// Bytecode is the 0x prefixed creation code
	Bytecode string `json:"bytecode"`
	// Path is the artifact file relative to the project root
	Path string `json:"-"`
}

// HasBytecode reports whether the artifact can be deployed
func (a *Artifact) HasBytecode() bool {
	return a.Bytecode != "" && a.Bytecode != "0x"
}

// IsLinked reports whether the bytecode still has library placeholders
func (a *Artifact) IsLinked() bool {
	return !strings.Contains(a.Bytecode, "__")
}

// artifactFile accepts hardhat artifacts (bytecode is a string) and forge
// artifacts (bytecode.object, compilationTarget in metadata).
type artifactFile struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
	Metadata     struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	} `json:"metadata"`
}

// ParseArtifact decodes a hardhat or forge artifact file
func ParseArtifact(data []byte) (*Artifact, error) {
	var f artifactFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	a := &Artifact{Name: f.ContractName, SourceName: f.SourceName, ABI: f.ABI}
	if a.Name == "" {
		for source, name := range f.Metadata.Settings.CompilationTarget {
			a.SourceName, a.Name = source, name
		}
	}
	if a.Name == "" {
		return nil, fmt.Errorf("artifact has no contract name")
	}

	if len(f.Bytecode) > 0 {
		var code string
		if err := json.Unmarshal(f.Bytecode, &code); err != nil {
			var obj struct {
				Object string `json:"object"`
			}
			if err := json.Unmarshal(f.Bytecode, &obj); err != nil {
				return nil, fmt.Errorf("artifact %s: unsupported bytecode field: %w", a.Name, err)
			}
			code = obj.Object
		}
		if code != "" && !strings.HasPrefix(code, "0x") {
			code = "0x" + code
		}
		a.Bytecode = code
	}
	return a, nil
}
