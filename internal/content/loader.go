package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Slepzs/oizys-keres/internal/config"
)

//go:embed defaults/content.yaml
var defaultContentYAML []byte

// Load reads, indexes and validates the content tables.
// Search order: customPath -> ~/.oizys/configs/content.yaml -> ./configs/content.yaml -> embedded default
func Load(customPath string) (*Catalog, error) {
	cat, err := config.LoadYAML(customPath, "content.yaml", defaultContentYAML, func() Catalog { return Catalog{} })
	if err != nil {
		return nil, err
	}
	cat.Index()
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("content: invalid tables: %w", err)
	}
	return &cat, nil
}

// Default returns the embedded content tables. It panics only if the embedded
// file itself is broken, which the package tests guard against.
func Default() *Catalog {
	var cat Catalog
	if err := yaml.Unmarshal(defaultContentYAML, &cat); err != nil {
		panic(fmt.Sprintf("content: embedded tables do not parse: %v", err))
	}
	cat.Index()
	return &cat
}
