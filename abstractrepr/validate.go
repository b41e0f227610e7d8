package abstractrepr

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/atomlab/pulsekit"
)

// Validate checks a JSON-encoded abstract representation against the schema
// for kind. A syntax failure in objStr reports parse_error; a well-formed
// document that does not conform reports schema_violation issues carrying the
// failing instance path. Returns nil on success.
//
// The first call selects and builds the process-wide backend (see
// EnvFastValidation); later calls, including concurrent ones, reuse it.
func Validate(objStr string, kind Kind) error {
	if _, ok := ParseKind(string(kind)); !ok {
		return unknownKind(kind)
	}
	var obj any
	if err := json.Unmarshal([]byte(objStr), &obj); err != nil {
		return pulsekit.Issues{{
			Code:    pulsekit.CodeParseError,
			Path:    "/",
			Message: fmt.Sprintf("invalid JSON: %v", err),
			Cause:   err,
		}}
	}
	b, err := activeBackend()
	if err != nil {
		return pulsekit.Issues{{
			Code:    pulsekit.CodeSchemaCompile,
			Path:    "/",
			Message: "schema compilation failed",
			Cause:   err,
		}}
	}
	return b.Validate(obj, kind)
}
