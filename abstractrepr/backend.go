package abstractrepr

import (
	"os"
	"strings"
	"sync"
)

// Backend validates one parsed JSON value against the schema for a kind.
// Implementations are stateless after construction and safe for concurrent
// use.
type Backend interface {
	Validate(obj any, kind Kind) error
}

// EnvFastValidation selects the precompiled backend when set to "true"
// (case-insensitive). Read once, on first validation.
const EnvFastValidation = "PULSEKIT_FAST_VALIDATION"

var (
	backendMu  sync.RWMutex
	backend    Backend
	backendErr error
)

// activeBackend returns the process-wide backend, constructing it on first
// use. Construction happens at most once; the result is reused read-only by
// every subsequent call.
func activeBackend() (Backend, error) {
	backendMu.RLock()
	b, err := backend, backendErr
	backendMu.RUnlock()
	if b != nil || err != nil {
		return b, err
	}
	backendMu.Lock()
	defer backendMu.Unlock()
	if backend == nil && backendErr == nil {
		backend, backendErr = defaultBackend()
	}
	return backend, backendErr
}

// SetBackend replaces the process-wide validation backend; nil values are
// ignored. This bypasses the EnvFastValidation selection and is intended for
// tests and embedders that construct backends explicitly.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backendMu.Lock()
	backend, backendErr = b, nil
	backendMu.Unlock()
}

func defaultBackend() (Backend, error) {
	if strings.EqualFold(os.Getenv(EnvFastValidation), "true") {
		return NewCompiledBackend()
	}
	return NewRegistryBackend(DetectGeneration())
}
