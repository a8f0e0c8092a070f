package codec

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed tree.schema.json
var treeSchema []byte

const schemaURL = "https://github.com/dgallion1/docstruct/schema/tree.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(treeSchema))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// Schema returns the bundled JSON schema document.
func Schema() []byte {
	return bytes.Clone(treeSchema)
}

// ValidateJSON checks a JSON tree against the bundled schema. Violations are
// returned as *ValidationError; malformed JSON as a plain error.
func ValidateJSON(r io.Reader) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(r)
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	err = sch.Validate(inst)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	out := &ValidationError{}
	collectProblems(ve, &out.Problems)
	return out
}

// collectProblems flattens the cause tree, keeping the leaf violations.
func collectProblems(ve *jsonschema.ValidationError, out *[]Problem) {
	if len(ve.Causes) == 0 {
		*out = append(*out, Problem{
			Path:    "/" + strings.Join(ve.InstanceLocation, "/"),
			Message: ve.Error(),
		})
		return
	}
	for _, c := range ve.Causes {
		collectProblems(c, out)
	}
}
