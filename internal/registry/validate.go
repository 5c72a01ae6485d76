package registry

import (
	"fmt"
	"slices"

	"github.com/bdalab/handwriting-features/internal/sample"
)

// Validate checks args against the schema of feature name and returns the
// validated arguments with defaults filled in. Arguments listed in skip are
// neither checked nor returned. Arguments the schema does not declare are
// dropped. Validating the result again yields the same mapping.
func Validate(name string, args Args, skip ...string) (Args, error) {
	d, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	if !d.MultiValued && requested(args["statistics"]) {
		return nil, fmt.Errorf("%w: feature %s", ErrStatisticsForSingleValued, name)
	}

	validated := make(Args, len(d.Arguments))
	for _, arg := range d.Arguments {
		if slices.Contains(skip, arg.Name) {
			continue
		}
		v, present := args[arg.Name]
		if !present || v == nil {
			if arg.Mandatory {
				return nil, fmt.Errorf("%w: argument %s, feature %s", ErrArgumentMissing, arg.Name, name)
			}
			if arg.Default != nil {
				validated[arg.Name] = arg.Default
			}
			continue
		}
		if len(arg.Types) > 0 && !slices.ContainsFunc(arg.Types, func(k Kind) bool { return k.accepts(v) }) {
			return nil, fmt.Errorf("%w: %T, argument %s, feature %s (accepts %v)",
				ErrArgumentInvalidType, v, arg.Name, name, arg.Types)
		}
		if len(arg.Options) > 0 {
			for _, e := range elements(v) {
				if !slices.Contains(arg.Options, e) {
					return nil, fmt.Errorf("%w: %v, argument %s, feature %s",
						ErrArgumentUnsupportedValue, e, arg.Name, name)
				}
			}
		}
		validated[arg.Name] = v
	}
	return validated, nil
}

// Fuse copies common values into a copy of args. A key is copied only when
// the feature declares it, args does not already hold it, it is not in
// skip, and the common value is not nil.
func Fuse(name string, args Args, common map[string]any, skip []string) (Args, error) {
	d, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	fused := args.Clone()
	for key, value := range common {
		if _, ok := fused[key]; ok {
			continue
		}
		if slices.Contains(skip, key) || value == nil || !d.Declares(key) {
			continue
		}
		fused[key] = value
	}
	return fused, nil
}

// requested reports whether a statistics value asks for anything.
func requested(v any) bool {
	switch s := v.(type) {
	case nil:
		return false
	case string:
		return s != ""
	case []string:
		return len(s) > 0
	case []any:
		return len(s) > 0
	default:
		return true
	}
}

// elements flattens a scalar or list argument into comparable values.
func elements(v any) []any {
	switch s := v.(type) {
	case sample.Axis:
		return []any{string(s)}
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	case []any:
		return s
	default:
		return []any{v}
	}
}
