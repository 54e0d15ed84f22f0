// SPDX-License-Identifier: MIT

// Package tensor: functional configuration for Dense construction.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors (panic on nonsensical values),
//   - gatherOptions helper that applies setters over the defaults.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package tensor

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultDevice is the placement assigned to freshly constructed arrays.
	DefaultDevice = CPU
)

const panicDeviceEmpty = "tensor: WithDevice: device must be non-empty"

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public constructors accept ...Option.
type Options struct {
	validateNaNInf bool   // DefaultValidateNaNInf
	device         Device // DefaultDevice
}

// WithValidateNaNInf enables rejection of NaN/±Inf in constructors and Set.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables the finite-only policy.
// Use when ingesting data that legitimately carries NaN sentinels.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithDevice places the constructed array on dev.
// Panics if dev is empty (programmer error).
func WithDevice(dev Device) Option {
	if dev == "" {
		panic(panicDeviceEmpty)
	}

	return func(o *Options) { o.device = dev }
}

// gatherOptions applies user-provided setters on top of the defaults.
// Implementation:
//   - Stage 1: start from Default* constants.
//   - Stage 2: apply setters in order (last-writer-wins).
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{
		validateNaNInf: DefaultValidateNaNInf,
		device:         DefaultDevice,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}
