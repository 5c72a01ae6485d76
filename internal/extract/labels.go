package extract

import (
	"fmt"

	"github.com/bdalab/handwriting-features/internal/registry"
	"github.com/bdalab/handwriting-features/internal/sample"
)

// Labels names the n values a step produced. Statistics give
// "{stat}:{feature}"; otherwise values are named after the feature, with
// "(sample-i)" or the composite names when there is more than one. Axis and
// surface suffixes follow when the feature takes those arguments.
func Labels(name string, args registry.Args, n int) []string {
	d, _ := registry.Lookup(name)

	var labels []string
	if statistics, _ := registry.StatisticsOf(args); len(statistics) > 0 {
		for _, s := range statistics {
			labels = append(labels, s+":"+name)
		}
	} else {
		labels = make([]string, n)
		for i := range labels {
			labels[i] = name
		}
		if n > 1 {
			switch {
			case d != nil && len(d.Composite) > 0:
				for i := range labels {
					if i < len(d.Composite) {
						labels[i] = d.Composite[i]
					} else {
						labels[i] = name + "(missing name specification)"
					}
				}
			default:
				for i := range labels {
					labels[i] = fmt.Sprintf("%s(sample-%d)", name, i+1)
				}
			}
		}
	}
	if d == nil {
		return labels
	}

	if axis := labelValue(d, args, "axis"); axis != nil {
		suffix := fmt.Sprintf(":axis-%v", axis)
		for i := range labels {
			labels[i] += suffix
		}
	}
	if inAir := labelValue(d, args, "in_air"); inAir != nil {
		if b, ok := inAir.(bool); ok {
			suffix := "(" + sample.SurfaceName(b) + ")"
			for i := range labels {
				labels[i] += suffix
			}
		}
	}
	return labels
}

// labelValue is the explicit value of a declared argument or its default.
func labelValue(d *registry.Descriptor, args registry.Args, key string) any {
	if !d.Declares(key) {
		return nil
	}
	if args.Has(key) {
		return args[key]
	}
	return d.Default(key)
}
