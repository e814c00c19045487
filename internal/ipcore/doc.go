// Package ipcore holds the small pieces every catalog generator shares: the
// per-instance artifact sink (Emitter), parameter checks that mirror a
// command-line "choices" validation, and the integer helpers used for
// bit-slicing arithmetic.
package ipcore
