package abstractrepr

import (
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/atomlab/pulsekit"
)

// compiledBackend holds one precompiled schema per kind. Every cross-schema
// reference is inlined before compilation, so no resource lookup happens at
// validation time.
type compiledBackend struct {
	schemas map[Kind]*jsonschema.Schema
}

// NewCompiledBackend inlines each embedded schema against the fragment
// registry and compiles the result. A $ref the registry cannot supply fails
// compilation here rather than at validation time.
func NewCompiledBackend() (Backend, error) {
	registry, err := schemaRegistry()
	if err != nil {
		return nil, err
	}
	schemas := make(map[Kind]*jsonschema.Schema, len(Kinds()))
	for _, k := range Kinds() {
		doc, err := schemaDocument(k)
		if err != nil {
			return nil, err
		}
		resolved := resolveReferences(doc, registry)
		c := jsonschema.NewCompiler()
		url := schemaURL(k)
		if err := c.AddResource(url, resolved); err != nil {
			return nil, fmt.Errorf("abstractrepr: add %s: %w", url, err)
		}
		sch, err := c.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("abstractrepr: compile inlined %s: %w", url, err)
		}
		schemas[k] = sch
	}
	return &compiledBackend{schemas: schemas}, nil
}

func (b *compiledBackend) Validate(obj any, kind Kind) error {
	sch, ok := b.schemas[kind]
	if !ok {
		return unknownKind(kind)
	}
	if err := sch.Validate(obj); err != nil {
		return issuesFromCurrent(err)
	}
	return nil
}

func unknownKind(kind Kind) error {
	return pulsekit.Issues{{
		Code:    pulsekit.CodeUnknownKind,
		Path:    "/",
		Message: fmt.Sprintf("unknown object kind %q", string(kind)),
	}}
}

// issuesFromCurrent flattens a v6 ValidationError cause tree into one issue
// per leaf constraint failure.
func issuesFromCurrent(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return pulsekit.Issues{{
			Code:    pulsekit.CodeSchemaViolation,
			Path:    "/",
			Message: err.Error(),
			Cause:   err,
		}}
	}
	var iss pulsekit.Issues
	var walk func(v *jsonschema.ValidationError)
	walk = func(v *jsonschema.ValidationError) {
		if len(v.Causes) == 0 {
			iss = pulsekit.AppendIssues(iss, pulsekit.Issue{
				Code:    pulsekit.CodeSchemaViolation,
				Path:    pointerFromSegments(v.InstanceLocation),
				Message: v.Error(),
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

func pointerFromSegments(segs []string) string {
	if len(segs) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range segs {
		b.WriteByte('/')
		s = strings.ReplaceAll(s, "~", "~0")
		s = strings.ReplaceAll(s, "/", "~1")
		b.WriteString(s)
	}
	return b.String()
}
