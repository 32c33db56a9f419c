// Package manifest loads the optional deadlang.json project manifest
// found next to the compiled source file and validates its compiler
// version constraint.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	semver "github.com/Masterminds/semver/v3"
)

// Filename is the manifest file looked up at the project root.
const Filename = "deadlang.json"

// Manifest describes a dead-lang project.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`

	// Compiler is a semver constraint the compiler version must
	// satisfy, e.g. ">= 0.1.0".
	Compiler string `json:"compiler,omitempty"`
}

// Load reads the manifest from the directory containing sourcePath. A
// missing manifest is not an error; (nil, nil) is returned.
func Load(sourcePath string) (*Manifest, error) {
	path := filepath.Join(filepath.Dir(sourcePath), Filename)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &m, nil
}

// CheckCompiler validates the manifest's compiler constraint against
// the given compiler version. A nil manifest or an absent constraint
// always passes.
func (m *Manifest) CheckCompiler(version string) error {
	if m == nil || m.Compiler == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(m.Compiler)
	if err != nil {
		return fmt.Errorf("invalid compiler constraint %q: %w", m.Compiler, err)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid compiler version %q: %w", version, err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("compiler version %s does not satisfy manifest constraint %q", version, m.Compiler)
	}

	return nil
}
