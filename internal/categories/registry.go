package categories

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry buckets mime types into storage categories. It is immutable
// after load, so lookups need no locking.
type Registry struct {
	categories []Category
	fallback   Category
}

// NewRegistry loads the embedded category YAML file
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/categories.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read categories.yaml: %w", err)
	}

	var cfg categoryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories.yaml: %w", err)
	}

	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("categories.yaml defines no categories")
	}
	if cfg.Fallback.ID == "" {
		return nil, fmt.Errorf("categories.yaml defines no fallback category")
	}

	return &Registry{
		categories: cfg.Categories,
		fallback:   cfg.Fallback,
	}, nil
}

// Categorize returns the first category matching the mime type, or the
// fallback when nothing matches. A nil mime type goes to the fallback.
func (r *Registry) Categorize(mimeType *string) Category {
	if mimeType == nil || *mimeType == "" {
		return r.fallback
	}

	mime := strings.ToLower(*mimeType)
	for _, cat := range r.categories {
		for _, prefix := range cat.MimePrefixes {
			if strings.HasPrefix(mime, prefix) {
				return cat
			}
		}
		for _, part := range cat.MimeContains {
			if strings.Contains(mime, part) {
				return cat
			}
		}
	}

	return r.fallback
}

// All returns the configured categories in YAML order, fallback last
func (r *Registry) All() []Category {
	all := make([]Category, 0, len(r.categories)+1)
	all = append(all, r.categories...)
	all = append(all, r.fallback)
	return all
}
