package hcl_adapter

import (
	"fmt"
	"reflect"

	"github.com/vk/ipforge/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var ctyValueType = reflect.TypeOf(cty.Value{})

// decode populates the Go value goVal points to from val, converting val to
// the manifest type first so that e.g. "8" decodes into an int field.
func (c *Converter) decode(val cty.Value, manifestType cty.Type, goVal any) error {
	goPtr := reflect.ValueOf(goVal).Elem()
	goType := goPtr.Type()

	if goType == ctyValueType {
		if val.IsKnown() {
			goPtr.Set(reflect.ValueOf(val))
		}
		return nil
	}
	if !val.IsKnown() || val.IsNull() {
		return nil
	}

	switch goType.Kind() {
	case reflect.Interface:
		native, err := ctyToNative(val)
		if err != nil {
			return err
		}
		if native != nil {
			goPtr.Set(reflect.ValueOf(native))
		}
		return nil

	case reflect.Struct:
		return c.decodeStruct(val, manifestType, goPtr)

	case reflect.Map:
		return c.decodeMap(val, manifestType, goPtr)

	case reflect.Slice:
		return c.decodeSlice(val, manifestType, goPtr)

	default:
		target := manifestType
		if target == cty.DynamicPseudoType {
			implied, err := gocty.ImpliedType(goPtr.Interface())
			if err != nil {
				return err
			}
			target = implied
		}
		converted, err := convert.Convert(val, target)
		if err != nil {
			return fmt.Errorf("cannot convert value of type %s to required type %s: %w", val.Type().FriendlyName(), target.FriendlyName(), err)
		}
		return gocty.FromCtyValue(converted, goVal)
	}
}

func (c *Converter) decodeStruct(val cty.Value, manifestType cty.Type, goPtr reflect.Value) error {
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return fmt.Errorf("type mismatch: cannot decode %s into Go struct %s", val.Type().FriendlyName(), goPtr.Type())
	}
	attrs := val.AsValueMap()
	goType := goPtr.Type()
	for i := 0; i < goType.NumField(); i++ {
		name := config.TagName(goType.Field(i), config.OutputTag)
		if name == "" {
			continue
		}
		attr, ok := attrs[name]
		if !ok {
			continue
		}
		attrType := attr.Type()
		if manifestType.IsObjectType() && manifestType.HasAttribute(name) {
			attrType = manifestType.AttributeType(name)
		}
		if err := c.decode(attr, attrType, goPtr.Field(i).Addr().Interface()); err != nil {
			return fmt.Errorf("in attribute '%s': %w", name, err)
		}
	}
	return nil
}

func (c *Converter) decodeMap(val cty.Value, manifestType cty.Type, goPtr reflect.Value) error {
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return fmt.Errorf("type mismatch: cannot decode %s into Go map %s", val.Type().FriendlyName(), goPtr.Type())
	}
	out := reflect.MakeMap(goPtr.Type())
	for it := val.ElementIterator(); it.Next(); {
		key, elem := it.Element()
		elemType := elem.Type()
		if manifestType.IsMapType() {
			elemType = manifestType.ElementType()
		}
		ptr := reflect.New(goPtr.Type().Elem())
		if err := c.decode(elem, elemType, ptr.Interface()); err != nil {
			return fmt.Errorf("failed to decode map element '%s': %w", key.AsString(), err)
		}
		out.SetMapIndex(reflect.ValueOf(key.AsString()), ptr.Elem())
	}
	goPtr.Set(out)
	return nil
}

func (c *Converter) decodeSlice(val cty.Value, manifestType cty.Type, goPtr reflect.Value) error {
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return fmt.Errorf("type mismatch: cannot decode %s into Go slice %s", ty.FriendlyName(), goPtr.Type())
	}
	out := reflect.MakeSlice(goPtr.Type(), 0, val.LengthInt())
	i := 0
	for it := val.ElementIterator(); it.Next(); i++ {
		_, elem := it.Element()
		elemType := elem.Type()
		if manifestType.IsListType() || manifestType.IsSetType() {
			elemType = manifestType.ElementType()
		}
		ptr := reflect.New(goPtr.Type().Elem())
		if err := c.decode(elem, elemType, ptr.Interface()); err != nil {
			return fmt.Errorf("in slice element %d: %w", i, err)
		}
		out = reflect.Append(out, ptr.Elem())
	}
	goPtr.Set(out)
	return nil
}
