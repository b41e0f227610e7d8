package pulsekit

// Package pulsekit provides:
//
// - Channel descriptors for neutral-atom hardware (channels/), including the
//   detuning map modulator (DMM) and its pulse range checks
// - Pulse and waveform value objects (pulse/)
// - JSON-schema validation of the serialized abstract representation
//   (abstractrepr/), with a precompiled fast backend and a reference-aware
//   registry backend
// - A stable error model via Issues (JSON Pointer path, code, message)
//
// Design policy:
// - Keep only the shared error model in the root package; domain code lives
//   in subpackages and the CLI under cmd/pulsekit.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	err := abstractrepr.Validate(jsonText, abstractrepr.KindDevice)
//
//	dmm, err := channels.NewDMM(channels.DMMConfig{BottomDetuning: pulsekit.Float(-20)})
//	err = dmm.ValidatePulse(p)
