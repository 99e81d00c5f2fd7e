package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse decodes manifest YAML and checks that its version fields are semver.
func Parse(data []byte) (*TemplateManifest, error) {
	var m TemplateManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	if m.Name == "" {
		return nil, fmt.Errorf("manifest missing required 'name' field")
	}
	if _, err := parseSemver(m.Version); err != nil {
		return nil, fmt.Errorf("manifest version %q: %w", m.Version, err)
	}
	if m.MinCLIVersion != "" {
		if _, err := parseSemver(m.MinCLIVersion); err != nil {
			return nil, fmt.Errorf("manifest min_cli_version %q: %w", m.MinCLIVersion, err)
		}
	}

	return &m, nil
}

// ParseFile reads and parses a manifest file.
func ParseFile(path string) (*TemplateManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
