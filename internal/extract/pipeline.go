package extract

import (
	"slices"

	"github.com/bdalab/handwriting-features/internal/registry"
)

// Step is one pipeline entry: a feature name and its arguments.
type Step struct {
	Name string        `json:"name" yaml:"name"`
	Args registry.Args `json:"args,omitempty" yaml:"args,omitempty"`
}

// expandable arguments may be given as lists; each combination becomes its
// own step.
var expandable = []string{"axis", "in_air"}

// PreparePipeline drops nil arguments and expands list-valued axis and
// in_air arguments into one step per combination, in order.
func PreparePipeline(pipeline []Step) []Step {
	var prepared []Step
	for _, step := range pipeline {
		base := make(registry.Args, len(step.Args))
		var keys []string
		var choices [][]any
		for key, value := range step.Args {
			if value == nil {
				continue
			}
			if !slices.Contains(expandable, key) {
				base[key] = value
				continue
			}
			keys = append(keys, key)
			choices = append(choices, listOf(value))
		}
		// stable order of the expanded keys
		order := make([]int, len(keys))
		for i := range order {
			order[i] = i
		}
		slices.SortFunc(order, func(a, b int) int {
			return slices.Index(expandable, keys[a]) - slices.Index(expandable, keys[b])
		})

		combos := []registry.Args{base}
		for _, i := range order {
			var next []registry.Args
			for _, c := range combos {
				for _, v := range choices[i] {
					a := c.Clone()
					a[keys[i]] = v
					next = append(next, a)
				}
			}
			combos = next
		}
		for _, c := range combos {
			prepared = append(prepared, Step{Name: step.Name, Args: c})
		}
	}
	return prepared
}

func listOf(v any) []any {
	switch s := v.(type) {
	case []any:
		return s
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	case []bool:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	default:
		return []any{v}
	}
}
