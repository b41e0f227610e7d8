package abstractrepr

import (
	"bytes"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// Generation selects the call shape of the reference-aware backend. The two
// supported schema-compiler generations expose incompatible APIs (resources
// are added from readers vs. pre-decoded documents, instance locations are
// strings vs. segment slices), so the split is fixed once at startup instead
// of being rechecked per call.
type Generation int

const (
	// GenerationLegacy targets santhosh-tekuri/jsonschema/v5.
	GenerationLegacy Generation = iota
	// GenerationCurrent targets santhosh-tekuri/jsonschema/v6.
	GenerationCurrent
)

// DetectGeneration reports the compiler generation used by default. The
// legacy path remains selectable for builds pinned to the v5 compiler.
func DetectGeneration() Generation { return GenerationCurrent }

// NewRegistryBackend builds the reference-aware backend: the raw schemas are
// registered as named resources and $ref resolution is left to the compiler.
func NewRegistryBackend(gen Generation) (Backend, error) {
	if gen == GenerationLegacy {
		return newLegacyRegistryBackend()
	}
	return newCurrentRegistryBackend()
}

type registryBackend struct {
	schemas map[Kind]*jsonschema.Schema
}

func newCurrentRegistryBackend() (Backend, error) {
	c := jsonschema.NewCompiler()
	for _, k := range Kinds() {
		raw, err := rawSchema(k)
		if err != nil {
			return nil, err
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("abstractrepr: parse %s: %w", schemaURL(k), err)
		}
		if err := c.AddResource(schemaURL(k), doc); err != nil {
			return nil, fmt.Errorf("abstractrepr: add %s: %w", schemaURL(k), err)
		}
	}
	schemas := make(map[Kind]*jsonschema.Schema, len(Kinds()))
	for _, k := range Kinds() {
		sch, err := c.Compile(schemaURL(k))
		if err != nil {
			return nil, fmt.Errorf("abstractrepr: compile %s: %w", schemaURL(k), err)
		}
		schemas[k] = sch
	}
	return &registryBackend{schemas: schemas}, nil
}

func (b *registryBackend) Validate(obj any, kind Kind) error {
	sch, ok := b.schemas[kind]
	if !ok {
		return unknownKind(kind)
	}
	if err := sch.Validate(obj); err != nil {
		return issuesFromCurrent(err)
	}
	return nil
}
