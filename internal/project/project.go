// Package project locates and reads the optional cloth.toml manifest
// that marks a project root and pins the compiler version the project
// expects.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
)

const ManifestName = "cloth.toml"

// ToolVersion is the version reported by the compiler and checked
// against manifest constraints.
const ToolVersion = "0.4.2"

// Manifest mirrors cloth.toml.
type Manifest struct {
	Name     string `toml:"name"`
	Version  string `toml:"version"`
	Compiler string `toml:"compiler"` // semver constraint, e.g. ">= 0.4"
	Entry    string `toml:"entry"`
}

// FindRoot walks upward from the entry file's directory looking for a
// manifest. Without one the entry file's directory is the project root.
func FindRoot(entryFile string) (root string, manifestPath string) {
	abs, err := filepath.Abs(entryFile)
	if err != nil {
		return filepath.Dir(entryFile), ""
	}
	dir := filepath.Dir(abs)
	for cur := dir; ; {
		candidate := filepath.Join(cur, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return cur, candidate
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return dir, ""
		}
		cur = parent
	}
}

// Load reads a manifest file. A missing path returns a nil manifest
// without error; projects do not need one.
func Load(manifestPath string) (*Manifest, error) {
	if manifestPath == "" {
		return nil, nil
	}
	var m Manifest
	if _, err := toml.DecodeFile(manifestPath, &m); err != nil {
		return nil, fmt.Errorf("reading %s: %w", ManifestName, err)
	}
	return &m, nil
}

// CheckCompiler validates the manifest's compiler constraint against
// this build. Malformed constraints and unsatisfied ranges both become
// diagnostics rather than hard failures.
func (m *Manifest) CheckCompiler(bag *diagnostics.Bag) {
	if m == nil || m.Compiler == "" {
		return
	}
	constraint, err := semver.NewConstraint(m.Compiler)
	if err != nil {
		bag.Add(
			diagnostics.NewError(fmt.Sprintf("invalid compiler constraint %q in %s", m.Compiler, ManifestName)).
				WithCode(diagnostics.ErrVersionConstraint).
				WithHelp("use a semver range such as \">= 0.4, < 1.0\""),
		)
		return
	}
	version := semver.MustParse(ToolVersion)
	if !constraint.Check(version) {
		bag.Add(
			diagnostics.NewError(fmt.Sprintf("project requires compiler %s, this is %s", m.Compiler, ToolVersion)).
				WithCode(diagnostics.ErrVersionConstraint),
		)
	}
}
