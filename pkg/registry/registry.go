// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/models"
)

//go:embed seed.json
var seedCatalog []byte

// Default returns the built-in Mergington High School catalog.
func Default() (models.Catalog, error) {
	return Parse(seedCatalog)
}

// LoadCatalog reads and validates a catalog file.
func LoadCatalog(path string) (models.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates data against the catalog schema and decodes it, keeping
// the document's activity order.
func Parse(data []byte) (models.Catalog, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var catalog models.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, apperrors.NewCatalogInvalidError(err.Error())
	}
	return catalog, nil
}
