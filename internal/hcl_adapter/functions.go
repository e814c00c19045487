package hcl_adapter

import (
	"fmt"

	"github.com/vk/ipforge/internal/ipcore"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Clog2Func returns the number of address bits needed for n entries, never
// less than 1.
var Clog2Func = function.New(&function.Spec{
	Description: "Returns the address width needed to index n entries.",
	Params: []function.Parameter{
		{Name: "n", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		var n int
		if err := gocty.FromCtyValue(args[0], &n); err != nil {
			return cty.UnknownVal(cty.Number), fmt.Errorf("clog2: %w", err)
		}
		if n < 1 {
			return cty.UnknownVal(cty.Number), fmt.Errorf("clog2: n must be positive, got %d", n)
		}
		return cty.NumberIntVal(int64(ipcore.Clog2(n))), nil
	},
})

// Functions returns the function table for argument expressions.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"abs":    stdlib.AbsoluteFunc,
		"ceil":   stdlib.CeilFunc,
		"clog2":  Clog2Func,
		"floor":  stdlib.FloorFunc,
		"format": stdlib.FormatFunc,
		"log":    stdlib.LogFunc,
		"lower":  stdlib.LowerFunc,
		"max":    stdlib.MaxFunc,
		"min":    stdlib.MinFunc,
		"pow":    stdlib.PowFunc,
		"upper":  stdlib.UpperFunc,
	}
}
