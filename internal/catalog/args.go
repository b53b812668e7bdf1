package catalog

import (
	"context"
	"fmt"
	"math"

	"github.com/vk/assemblygo/internal/element"
)

// StringArg returns args[i] as a string. def is returned when the argument
// is absent.
func StringArg(args []any, i int, def string) (string, error) {
	if i >= len(args) || args[i] == nil {
		return def, nil
	}
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("argument %d: expected a string, got %T", i, args[i])
	}
	return s, nil
}

// IntArg returns args[i] as an int. Whole floats are accepted since some
// front ends decode every number as float64.
func IntArg(args []any, i int, def int) (int, error) {
	if i >= len(args) || args[i] == nil {
		return def, nil
	}
	switch n := args[i].(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("argument %d: expected a whole number, got %v", i, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("argument %d: expected a number, got %T", i, args[i])
	}
}

// RequireArgs fails unless at least n arguments are present.
func RequireArgs(args []any, n int) error {
	if len(args) < n {
		return fmt.Errorf("expected at least %d argument(s), got %d", n, len(args))
	}
	return nil
}

// RefArg returns the element args[i] refers to. A string is a name looked
// up from the built element's group outward; any other value was already
// resolved by the front end and is returned unchanged. def names the
// element when the argument is absent.
func RefArg(ctx context.Context, bc *element.BuildContext, args []any, i int, def string) (any, error) {
	if i < len(args) && args[i] != nil {
		if _, isName := args[i].(string); !isName {
			return args[i], nil
		}
	}
	name, err := StringArg(args, i, def)
	if err != nil {
		return nil, err
	}
	return bc.Lookup(ctx, name)
}
