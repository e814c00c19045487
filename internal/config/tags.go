package config

import (
	"reflect"
	"strings"
)

// InputTag is the struct tag binding a generator input field to a manifest
// input, e.g. `ipf:"data_width"`.
const InputTag = "ipf"

// OutputTag is the struct tag binding a generator output field to a
// manifest output. It is the tag go-cty's gocty package reads.
const OutputTag = "cty"

// TagName returns the manifest name a struct field is bound to under tag,
// or "" when the field is unbound.
func TagName(field reflect.StructField, tag string) string {
	name := strings.Split(field.Tag.Get(tag), ",")[0]
	if name == "-" || !field.IsExported() {
		return ""
	}
	return name
}
