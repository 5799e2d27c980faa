package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultCurrency = "USD"

// Load reads and validates a YAML catalog. Sections missing from the file are
// filled from the built-in catalog so a file can override just the prices.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrNotFound
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(raw, path)
}

// Parse decodes a YAML catalog document. name is only used in error messages.
func Parse(raw []byte, name string) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", name, err)
	}
	fillDefaults(&c)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", name, err)
	}
	return &c, nil
}

func fillDefaults(c *Catalog) {
	def := Default()
	if strings.TrimSpace(c.Currency) == "" {
		c.Currency = defaultCurrency
	}
	if len(c.Plans) == 0 {
		c.Plans = def.Plans
	}
	if len(c.AddOns) == 0 {
		c.AddOns = def.AddOns
	}
	if len(c.GalleryCategories) == 0 {
		c.GalleryCategories = def.GalleryCategories
	}
	if len(c.Gallery) == 0 {
		c.Gallery = def.Gallery
	}
	if len(c.Trainers) == 0 {
		c.Trainers = def.Trainers
	}
	if len(c.Interests) == 0 {
		c.Interests = def.Interests
	}
}
