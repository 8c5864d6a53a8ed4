package commands

import (
	"github.com/de-tools/decision-simulator/pkg/services/catalog"
	"github.com/de-tools/decision-simulator/pkg/services/validation"
)

func loadCatalog(path string, validator *validation.Validator) (catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path, validator)
}
