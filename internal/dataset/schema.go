package dataset

import (
	"fmt"

	"github.com/juto-shogan/customer-support-case-analysis/internal/model"
)

// Schema is the fixed set of columns the pipeline reads. Validating it once at
// load time turns a missing column into a single early error instead of a
// failure deep inside an aggregator.
type Schema struct {
	Date   string // Opened timestamp column
	Status string
	Origin string
	Brand  string
	Reason string
}

// SchemaFromConfig builds a Schema from the data configuration
func SchemaFromConfig(cfg model.DataConfig) Schema {
	return Schema{
		Date:   cfg.DateColumn,
		Status: cfg.StatusColumn,
		Origin: cfg.OriginColumn,
		Brand:  cfg.BrandColumn,
		Reason: cfg.ReasonColumn,
	}
}

// Required returns every column the schema demands, in a stable order
func (s Schema) Required() []string {
	return []string{s.Date, s.Status, s.Origin, s.Brand, s.Reason}
}

// Validate checks that every required column exists in the header
func (s Schema) Validate(header []string, path string) error {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}
	for _, col := range s.Required() {
		if col == "" {
			return fmt.Errorf("schema has an empty column name")
		}
		if !present[col] {
			return fmt.Errorf("column %q not found in %s", col, path)
		}
	}
	return nil
}
