package hcl_adapter

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// envFunc returns the value of an environment variable, or the empty string.
var envFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "name", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.StringVal(os.Getenv(args[0].AsString())), nil
	},
})

// newEvalContext returns the context expressions in definition files are
// evaluated in.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"upper":      stdlib.UpperFunc,
			"lower":      stdlib.LowerFunc,
			"format":     stdlib.FormatFunc,
			"concat":     stdlib.ConcatFunc,
			"jsonencode": stdlib.JSONEncodeFunc,
			"env":        envFunc,
		},
	}
}
