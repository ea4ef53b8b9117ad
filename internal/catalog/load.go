package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/medfluent/internal/domain/content"
	"github.com/phrazzld/medfluent/internal/domain/economy"
	"gopkg.in/yaml.v3"
)

//go:embed medfluent.yaml
var medfluentYAML []byte

// Bundle is everything a course definition provides.
type Bundle struct {
	Catalog *content.Catalog
	// Shop lists the purchasable items, none owned.
	Shop economy.Shop
	// StarterItems is the inventory every new learner begins with.
	StarterItems map[economy.Category][]economy.ItemID
}

// Load decodes and validates a YAML course definition. Unknown fields are
// rejected so typos in content files surface early.
func Load(r io.Reader) (*Bundle, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to decode course definition: %w", err)
	}
	if err := validator.New().Struct(&def); err != nil {
		return nil, fmt.Errorf("course definition validation failed: %w", err)
	}
	return def.build()
}

// LoadFile reads a course definition from path.
func LoadFile(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open course definition: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Default returns the embedded MedFluent course.
func Default() (*Bundle, error) {
	return Load(bytes.NewReader(medfluentYAML))
}
