package categories

// Category describes one storage bucket in the usage breakdown
type Category struct {
	ID           string   `yaml:"id"`
	DisplayName  string   `yaml:"display_name"`
	Color        string   `yaml:"color"`
	MimePrefixes []string `yaml:"mime_prefixes"`
	MimeContains []string `yaml:"mime_contains"`
}

// categoryConfig is the shape of the embedded YAML file
type categoryConfig struct {
	Categories []Category `yaml:"categories"`
	Fallback   Category   `yaml:"fallback"`
}
