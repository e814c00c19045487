package hcl_adapter

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestTypeExprToCtyType(t *testing.T) {
	testCases := []struct {
		src  string
		want cty.Type
	}{
		{"string", cty.String},
		{"number", cty.Number},
		{"bool", cty.Bool},
		{"any", cty.DynamicPseudoType},
		{"list(string)", cty.List(cty.String)},
		{"map(number)", cty.Map(cty.Number)},
		{"set(bool)", cty.Set(cty.Bool)},
		{"object({})", cty.EmptyObject},
		{`object({ name = string, "depth" = number })`, cty.Object(map[string]cty.Type{"name": cty.String, "depth": cty.Number})},
		{"list(object({ lane = number }))", cty.List(cty.Object(map[string]cty.Type{"lane": cty.Number}))},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			expr, diags := hclsyntax.ParseExpression([]byte(tc.src), "type.hcl", hcl.InitialPos)
			require.False(t, diags.HasErrors(), diags.Error())
			got, err := typeExprToCtyType(expr)
			require.NoError(t, err)
			assert.True(t, tc.want.Equals(got), "want %s, got %s", tc.want.FriendlyName(), got.FriendlyName())
		})
	}

	nilType, err := typeExprToCtyType(nil)
	require.NoError(t, err)
	assert.Equal(t, cty.DynamicPseudoType, nilType)
}

func TestTypeExprToCtyType_Errors(t *testing.T) {
	testCases := map[string]string{
		"integer":             `unknown primitive type "integer"`,
		"tuple(string)":       `unknown type constructor function "tuple"`,
		"list(string, bool)":  "require exactly one argument, got 2",
		"list(any)":           "collection types cannot contain type 'any'",
		"object(string)":      "must be an object literal",
		`"string"`:            "unsupported expression for type definition",
		"object({ a = blob })": `in object attribute 'a': unknown primitive type "blob"`,
	}
	for src, errMsg := range testCases {
		t.Run(src, func(t *testing.T) {
			expr, diags := hclsyntax.ParseExpression([]byte(src), "type.hcl", hcl.InitialPos)
			require.False(t, diags.HasErrors(), diags.Error())
			_, err := typeExprToCtyType(expr)
			require.Error(t, err)
			assert.ErrorContains(t, err, errMsg)
		})
	}
}
