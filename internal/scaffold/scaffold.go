package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentkit-dev/agentkit/internal/manifest"
)

// templateRoot is the embedded directory holding the bundled tree.
const templateRoot = "template"

// BundledName is how the embedded template is shown in output.
const BundledName = "<bundled>"

//go:embed all:template
var templateFS embed.FS

//go:embed template.yaml
var manifestBytes []byte

// Source is a resolved template tree.
type Source struct {
	FS      fs.FS
	Root    string // Absolute directory, or BundledName for the embedded tree
	Bundled bool
}

// Bundled returns the embedded template tree.
func Bundled() *Source {
	sub, err := fs.Sub(templateFS, templateRoot)
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(fmt.Sprintf("scaffold: embedded template missing: %v", err))
	}
	return &Source{FS: sub, Root: BundledName, Bundled: true}
}

// Resolve returns the template tree at dir, or the bundled tree when dir is
// empty. A directory that does not exist is not an error here; the
// materializer reports it when the copy starts.
func Resolve(dir string) (*Source, error) {
	if dir == "" {
		return Bundled(), nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving template directory %s: %w", dir, err)
	}
	return &Source{FS: os.DirFS(abs), Root: abs}, nil
}

// Manifest parses the bundled template's manifest.
func Manifest() (*manifest.TemplateManifest, error) {
	m, err := manifest.Parse(manifestBytes)
	if err != nil {
		return nil, fmt.Errorf("bundled template manifest: %w", err)
	}
	return m, nil
}

// ValidateManifest validates the bundled manifest against the manifest schema.
func ValidateManifest() (*manifest.ValidationResult, error) {
	return manifest.Validate(manifestBytes)
}
