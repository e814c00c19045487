// Package bram maps a logical memory (width x depth) onto TDP_RAM36K block
// RAM primitives.
//
// The mapping is closed-form: pick an aspect ratio, tile the memory into
// rows (depth) and columns (width) of primitives, split the logical address
// into a row-select field and an intra-primitive address, and encode each
// port's word width into the primitive's MODE_BITS. Plan returns the full
// Layout; nothing here emits Verilog.
package bram
