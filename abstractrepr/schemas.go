// Package abstractrepr validates the JSON serialization format for sequences,
// devices, layouts, registers and noise models against embedded schemas.
//
// Two interchangeable backends implement the validation: a precompiled one
// that inlines every cross-schema reference up front, and a reference-aware
// one that hands resolution to the schema compiler's resource registry. Both
// must agree on pass/fail for every kind.
package abstractrepr

import (
	"bytes"
	"embed"
	"fmt"

	json "github.com/goccy/go-json"
)

// Kind identifies one serialized object family of the abstract representation.
type Kind string

const (
	KindSequence Kind = "sequence"
	KindDevice   Kind = "device"
	KindLayout   Kind = "layout"
	KindRegister Kind = "register"
	KindNoise    Kind = "noise"
)

// Kinds lists every valid kind.
func Kinds() []Kind {
	return []Kind{KindSequence, KindDevice, KindLayout, KindRegister, KindNoise}
}

// ParseKind maps a string onto the closed Kind set.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

//go:embed schemas/*.json
var schemaFS embed.FS

// schemaURL is both the embedded file name and the resource URL a $ref in the
// sequence schema points at.
func schemaURL(k Kind) string { return string(k) + "-schema.json" }

func rawSchema(k Kind) ([]byte, error) {
	return schemaFS.ReadFile("schemas/" + schemaURL(k))
}

// schemaDocument returns a freshly parsed, unshared copy of the schema for k.
// Numbers decode as json.Number to match what the schema compiler produces
// from its own document loader.
func schemaDocument(k Kind) (map[string]any, error) {
	raw, err := rawSchema(k)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("abstractrepr: parse %s: %w", schemaURL(k), err)
	}
	return doc, nil
}

// schemaRegistry builds the fragment registry used for $ref inlining: every
// schema a sequence document can point at, keyed by schema file name. The
// fragments are reference-free, which keeps single-level resolution complete.
func schemaRegistry() (map[string]map[string]any, error) {
	kinds := []Kind{KindDevice, KindLayout, KindRegister, KindNoise}
	reg := make(map[string]map[string]any, len(kinds))
	for _, k := range kinds {
		doc, err := schemaDocument(k)
		if err != nil {
			return nil, err
		}
		reg[schemaURL(k)] = doc
	}
	return reg, nil
}
