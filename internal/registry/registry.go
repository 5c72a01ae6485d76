// Package registry declares every feature's argument schema and maps
// feature names to their computations.
package registry

import (
	"errors"
	"fmt"

	"github.com/bdalab/handwriting-features/internal/sample"
)

var (
	ErrFeatureNameMissing        = errors.New("missing feature name")
	ErrFeatureNameUnsupported    = errors.New("unsupported feature")
	ErrArgumentMissing           = errors.New("missing mandatory feature argument")
	ErrArgumentInvalidType       = errors.New("unsupported feature argument type")
	ErrArgumentUnsupportedValue  = errors.New("unsupported feature argument value")
	ErrStatisticsForSingleValued = errors.New("statistics are not supported for single-valued features")
)

// Kind is an accepted argument type.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindNumber
	KindInt
	KindStringList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindInt:
		return "int"
	case KindStringList:
		return "[]string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Argument describes one feature argument.
type Argument struct {
	Name      string
	Mandatory bool
	Types     []Kind
	Options   []any // allowed values; nil allows any
	Default   any   // nil means no default
}

// Func computes a feature from a wrapper and validated arguments.
type Func func(w *sample.Wrapper, args Args) ([]float64, error)

// Descriptor is the immutable registry entry of a feature.
type Descriptor struct {
	Name string
	// MultiValued features return one value per stroke or point and accept
	// statistics.
	MultiValued bool
	// Composite holds fixed labels for features returning a vector of
	// distinct quantities.
	Composite []string
	Arguments []Argument

	compute Func
}

// Argument returns the declared argument called name.
func (d *Descriptor) Argument(name string) (Argument, bool) {
	for _, a := range d.Arguments {
		if a.Name == name {
			return a, true
		}
	}
	return Argument{}, false
}

// Declares reports whether the feature has an argument called name.
func (d *Descriptor) Declares(name string) bool {
	_, ok := d.Argument(name)
	return ok
}

// Default returns the default of argument name, or nil.
func (d *Descriptor) Default(name string) any {
	a, _ := d.Argument(name)
	return a.Default
}

// Compute runs the feature. args should have passed Validate.
func (d *Descriptor) Compute(w *sample.Wrapper, args Args) ([]float64, error) {
	return d.compute(w, args)
}

var byName = func() map[string]*Descriptor {
	m := make(map[string]*Descriptor, len(descriptors))
	for i := range descriptors {
		m[descriptors[i].Name] = &descriptors[i]
	}
	return m
}()

// Lookup returns the descriptor of a feature.
func Lookup(name string) (*Descriptor, error) {
	if name == "" {
		return nil, ErrFeatureNameMissing
	}
	d, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFeatureNameUnsupported, name)
	}
	return d, nil
}

// Map returns the computation of a feature.
func Map(name string) (Func, error) {
	d, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return d.compute, nil
}

// Names lists every registered feature in registration order.
func Names() []string {
	out := make([]string, len(descriptors))
	for i, d := range descriptors {
		out[i] = d.Name
	}
	return out
}
