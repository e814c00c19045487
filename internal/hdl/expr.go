package hdl

import (
	"fmt"
	"regexp"
	"strings"
)

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// reserved holds the Verilog keywords a generated name must not collide with.
var reserved = map[string]struct{}{
	"always": {}, "assign": {}, "begin": {}, "case": {}, "default": {}, "else": {},
	"end": {}, "endcase": {}, "endgenerate": {}, "endmodule": {}, "for": {},
	"generate": {}, "genvar": {}, "if": {}, "inout": {}, "input": {}, "integer": {},
	"localparam": {}, "module": {}, "output": {}, "parameter": {}, "posedge": {},
	"negedge": {}, "reg": {}, "wire": {},
}

// IsIdentifier reports whether s can be used as a Verilog module or net name.
func IsIdentifier(s string) bool {
	if !identRegex.MatchString(s) {
		return false
	}
	_, kw := reserved[s]
	return !kw
}

// Range returns the packed range for a bus of the given width, or "" for a
// single bit.
func Range(width int) string {
	if width <= 1 {
		return ""
	}
	return fmt.Sprintf("[%d:0]", width-1)
}

// Slice selects bits hi..lo of sig.
func Slice(sig string, hi, lo int) string {
	if hi == lo {
		return fmt.Sprintf("%s[%d]", sig, lo)
	}
	return fmt.Sprintf("%s[%d:%d]", sig, hi, lo)
}

// Concat joins parts MSB first. A single part is returned unchanged.
func Concat(parts ...string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Zeros is an n-bit zero literal.
func Zeros(n int) string {
	return fmt.Sprintf("%d'b0", n)
}

// Ones is an n-bit all-ones literal.
func Ones(n int) string {
	return fmt.Sprintf("%d'b%s", n, strings.Repeat("1", n))
}

// Lit is an n-bit unsigned decimal literal.
func Lit(width int, v uint64) string {
	return fmt.Sprintf("%d'd%d", width, v)
}

// BinLit is a binary literal whose width is the length of bits.
func BinLit(bits string) string {
	return fmt.Sprintf("%d'b%s", len(bits), bits)
}

// HexLit is a width-bit hexadecimal literal.
func HexLit(width int, hex string) string {
	return fmt.Sprintf("%d'h%s", width, hex)
}

// Repeat replicates expr n times.
func Repeat(n int, expr string) string {
	return fmt.Sprintf("{%d{%s}}", n, expr)
}

// Str quotes a Verilog string parameter value.
func Str(s string) string {
	return fmt.Sprintf("%q", s)
}

// Bool renders a "TRUE"/"FALSE" string parameter, the convention used by the
// primitive library for enable flags.
func Bool(b bool) string {
	if b {
		return Str("TRUE")
	}
	return Str("FALSE")
}
