// Package docschema performs a structural JSON-Schema pre-check of author
// and manifest documents before the entry loaders and domain validators
// ever see them. It exists to turn "this isn't even shaped like an author
// object" into one readable error instead of a cascade of node-guard
// failures deeper in the pipeline.
package docschema

import (
	"embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// ValidationError is a single structural schema violation.
type ValidationError struct {
	Field   string
	Message string
}

// Result is the outcome of a structural pre-check.
type Result struct {
	Valid  bool
	Errors []ValidationError
}

var (
	registry   = map[string]*gojsonschema.Schema{}
	registryMu sync.RWMutex
)

func compiled(name string) (*gojsonschema.Schema, error) {
	registryMu.RLock()
	sch, ok := registry[name]
	registryMu.RUnlock()
	if ok {
		return sch, nil
	}

	data, err := schemaFS.ReadFile("schemas/" + name + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("docschema: unknown schema %q: %w", name, err)
	}
	sch, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("docschema: compiling %q: %w", name, err)
	}

	registryMu.Lock()
	registry[name] = sch
	registryMu.Unlock()
	return sch, nil
}

func validate(schemaName string, document interface{}) (*Result, error) {
	sch, err := compiled(schemaName)
	if err != nil {
		return nil, err
	}
	res, err := sch.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return nil, fmt.Errorf("docschema: validating against %q: %w", schemaName, err)
	}

	out := &Result{Valid: res.Valid()}
	for _, e := range res.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
		})
	}
	return out, nil
}

// ValidateAuthor runs the structural pre-check on an already-decoded author
// document (e.g. the output of encoding/json.Unmarshal into interface{}).
func ValidateAuthor(document interface{}) (*Result, error) {
	return validate("author", document)
}

// ValidateManifest runs the structural pre-check on an already-decoded
// manifest array.
func ValidateManifest(document interface{}) (*Result, error) {
	return validate("manifest", document)
}
