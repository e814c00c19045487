// This file parses HCL type expressions (e.g. `string`, `list(number)`,
// `object({ name = string })`) into cty.Type values.

package hcl_adapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// typeExprToCtyType converts a type expression into a cty.Type. A missing
// expression means `any`.
func typeExprToCtyType(expr hcl.Expression) (cty.Type, error) {
	if expr == nil {
		return cty.DynamicPseudoType, nil
	}

	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.DynamicPseudoType, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		return primitiveType(v.Traversal.RootName())

	case *hclsyntax.FunctionCallExpr:
		if v.Name == "object" {
			return objectType(v)
		}
		return collectionType(v)

	default:
		return cty.DynamicPseudoType, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

func primitiveType(keyword string) (cty.Type, error) {
	switch keyword {
	case "string":
		return cty.String, nil
	case "number":
		return cty.Number, nil
	case "bool":
		return cty.Bool, nil
	case "any":
		return cty.DynamicPseudoType, nil
	}
	return cty.DynamicPseudoType, fmt.Errorf("unknown primitive type %q", keyword)
}

func collectionType(call *hclsyntax.FunctionCallExpr) (cty.Type, error) {
	if len(call.Args) != 1 {
		return cty.DynamicPseudoType, fmt.Errorf("type constructors (list, map, set) require exactly one argument, got %d", len(call.Args))
	}
	elem, err := typeExprToCtyType(call.Args[0])
	if err != nil {
		return cty.DynamicPseudoType, err
	}
	if elem == cty.DynamicPseudoType {
		return cty.DynamicPseudoType, fmt.Errorf("collection types cannot contain type 'any'")
	}

	switch call.Name {
	case "list":
		return cty.List(elem), nil
	case "map":
		return cty.Map(elem), nil
	case "set":
		return cty.Set(elem), nil
	}
	return cty.DynamicPseudoType, fmt.Errorf("unknown type constructor function %q", call.Name)
}

func objectType(call *hclsyntax.FunctionCallExpr) (cty.Type, error) {
	if len(call.Args) != 1 {
		return cty.DynamicPseudoType, fmt.Errorf("the object() type constructor requires exactly one argument, got %d", len(call.Args))
	}
	cons, ok := call.Args[0].(*hclsyntax.ObjectConsExpr)
	if !ok {
		return cty.DynamicPseudoType, fmt.Errorf("the argument to object() must be an object literal like { key = type, ... }, got %T", call.Args[0])
	}

	attrs := make(map[string]cty.Type, len(cons.Items))
	for _, item := range cons.Items {
		key := objectKey(item.KeyExpr)
		if key == "" {
			return cty.DynamicPseudoType, fmt.Errorf("invalid key in object type definition: keys must be simple identifiers or quoted strings")
		}
		ty, err := typeExprToCtyType(item.ValueExpr)
		if err != nil {
			return cty.DynamicPseudoType, fmt.Errorf("in object attribute '%s': %w", key, err)
		}
		attrs[key] = ty
	}
	return cty.Object(attrs), nil
}

// objectKey unwraps an object constructor key that is a bare identifier or a
// literal string; anything else yields "".
func objectKey(expr hclsyntax.Expression) string {
	wrapped, ok := expr.(*hclsyntax.ObjectConsKeyExpr)
	if !ok {
		return ""
	}
	switch k := wrapped.Wrapped.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(k.Traversal) == 1 {
			return k.Traversal.RootName()
		}
	case *hclsyntax.TemplateExpr:
		if len(k.Parts) == 1 {
			if lit, ok := k.Parts[0].(*hclsyntax.LiteralValueExpr); ok && lit.Val.Type().Equals(cty.String) {
				return lit.Val.AsString()
			}
		}
	}
	return ""
}
