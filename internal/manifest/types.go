package manifest

// TemplateManifest describes a template tree.
type TemplateManifest struct {
	Name          string   `yaml:"name" json:"name"`
	Version       string   `yaml:"version" json:"version"`
	Description   string   `yaml:"description" json:"description"`
	MinCLIVersion string   `yaml:"min_cli_version,omitempty" json:"min_cli_version,omitempty"`
	Tags          []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Author        string   `yaml:"author,omitempty" json:"author,omitempty"`
}
