// SPDX-License-Identifier: MIT

package tensor

// Device is an opaque placement identifier for a Dense buffer.
// All kernels in this package run on the host; the tag lets callers track
// where a factor is meant to live and verify that relocation reached it.
type Device string

// CPU is the default host placement.
const CPU Device = "cpu"

// Device reports the placement of m.
func (m *Dense) Device() Device { return m.device }

// To returns a copy of m placed on dev. The receiver is left untouched.
// Relocating to the current device still copies, so the result never aliases m.
// Complexity: O(n).
func (m *Dense) To(dev Device) *Dense {
	out := m.Clone()
	out.device = dev

	return out
}
