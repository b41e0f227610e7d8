package abstractrepr

import (
	"bytes"
	"errors"
	"fmt"

	jsonschemav5 "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/atomlab/pulsekit"
)

// legacyRegistryBackend is the GenerationLegacy variant of the registry
// backend, built on the v5 compiler: resources are added as readers and
// instance locations come back as JSON Pointer strings.
type legacyRegistryBackend struct {
	schemas map[Kind]*jsonschemav5.Schema
}

func newLegacyRegistryBackend() (Backend, error) {
	c := jsonschemav5.NewCompiler()
	for _, k := range Kinds() {
		raw, err := rawSchema(k)
		if err != nil {
			return nil, err
		}
		if err := c.AddResource(schemaURL(k), bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("abstractrepr: add %s: %w", schemaURL(k), err)
		}
	}
	schemas := make(map[Kind]*jsonschemav5.Schema, len(Kinds()))
	for _, k := range Kinds() {
		sch, err := c.Compile(schemaURL(k))
		if err != nil {
			return nil, fmt.Errorf("abstractrepr: compile %s: %w", schemaURL(k), err)
		}
		schemas[k] = sch
	}
	return &legacyRegistryBackend{schemas: schemas}, nil
}

func (b *legacyRegistryBackend) Validate(obj any, kind Kind) error {
	sch, ok := b.schemas[kind]
	if !ok {
		return unknownKind(kind)
	}
	if err := sch.Validate(obj); err != nil {
		return issuesFromLegacy(err)
	}
	return nil
}

// issuesFromLegacy flattens a v5 ValidationError cause tree into one issue
// per leaf constraint failure.
func issuesFromLegacy(err error) error {
	var ve *jsonschemav5.ValidationError
	if !errors.As(err, &ve) {
		return pulsekit.Issues{{
			Code:    pulsekit.CodeSchemaViolation,
			Path:    "/",
			Message: err.Error(),
			Cause:   err,
		}}
	}
	var iss pulsekit.Issues
	var walk func(v *jsonschemav5.ValidationError)
	walk = func(v *jsonschemav5.ValidationError) {
		if len(v.Causes) == 0 {
			path := v.InstanceLocation
			if path == "" {
				path = "/"
			}
			iss = pulsekit.AppendIssues(iss, pulsekit.Issue{
				Code:    pulsekit.CodeSchemaViolation,
				Path:    path,
				Message: v.Message,
				Cause:   v,
			})
			return
		}
		for _, c := range v.Causes {
			walk(c)
		}
	}
	walk(ve)
	return iss
}
