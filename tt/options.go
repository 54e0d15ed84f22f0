// SPDX-License-Identifier: MIT

// Package tt: functional configuration for chain construction.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
package tt

import (
	"fmt"

	"github.com/katalvlaran/tensortrain/tensor"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidate enables eager rank-consistency checks at construction.
	// When off, a mismatch still surfaces from Full as ErrShape.
	DefaultValidate = true
)

// ---------- Internal panic messages ----------

const (
	panicExpectedShape = "tt: WithExpectedShape: dims must be non-empty and positive"
	panicExpectedRanks = "tt: WithExpectedRanks: ranks must be non-empty and positive"
	panicDeviceEmpty   = "tt: WithDevice: device must be non-empty"
)

// Option mutates internal options. Safe to apply repeatedly.
// Constructors panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	validate bool          // DefaultValidate
	shape    []int         // nil ⇒ no expectation
	ranks    []int         // nil ⇒ no expectation
	device   tensor.Device // "" ⇒ keep the factors' placement
}

// WithValidation turns on eager adjacent-rank validation (the default).
func WithValidation() Option {
	return func(o *Options) { o.validate = true }
}

// WithoutValidation defers adjacent-rank checks to Full.
// Batch sizes are always checked regardless.
func WithoutValidation() Option {
	return func(o *Options) { o.validate = false }
}

// WithExpectedShape makes construction fail with ErrShape unless the derived
// Shape() equals dims (for a Batch, dims includes the leading batch axis).
// Panics if dims is empty or holds a non-positive entry.
func WithExpectedShape(dims ...int) Option {
	cp := mustPositive(dims, panicExpectedShape)

	return func(o *Options) { o.shape = cp }
}

// WithExpectedRanks makes construction fail with ErrShape unless the derived
// Ranks() equals ranks (length ndims+1, closing boundary 1 included).
// Panics if ranks is empty or holds a non-positive entry.
func WithExpectedRanks(ranks ...int) Option {
	cp := mustPositive(ranks, panicExpectedRanks)

	return func(o *Options) { o.ranks = cp }
}

// WithDevice relocates every owned factor to dev at construction.
// Panics if dev is empty.
func WithDevice(dev tensor.Device) Option {
	if dev == "" {
		panic(panicDeviceEmpty)
	}

	return func(o *Options) { o.device = dev }
}

// mustPositive copies xs after checking it is non-empty and all-positive.
func mustPositive(xs []int, msg string) []int {
	if len(xs) == 0 {
		panic(msg)
	}
	for _, x := range xs {
		if x <= 0 {
			panic(fmt.Sprintf("%s (got %v)", msg, xs))
		}
	}
	cp := make([]int, len(xs))
	copy(cp, xs)

	return cp
}

// gatherOptions applies user setters on top of the defaults (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := Options{validate: DefaultValidate}
	for _, set := range user {
		set(&o)
	}

	return o
}
