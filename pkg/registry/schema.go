// pkg/registry/schema.go
package registry

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/xeipuuv/gojsonschema"

	apperrors "mergington-activities/internal/common/errors"
)

//go:embed catalog.schema.json
var catalogSchema []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(catalogSchema))
})

// Validate checks a raw catalog document against the catalog JSON Schema.
func Validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return apperrors.NewCatalogInvalidError(err.Error())
	}
	if !result.Valid() {
		msgs := lo.Map(result.Errors(), func(e gojsonschema.ResultError, _ int) string {
			return e.String()
		})
		return apperrors.NewCatalogInvalidError(strings.Join(msgs, "; "))
	}
	return nil
}
