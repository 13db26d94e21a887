package gochart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Validate checks a request against the constraints of its kind and returns
// the normalized arguments. Checks run in four phases (type, length,
// emptiness, domain) and the first violation is returned.
func Validate(req Request) (*Args, error) {
	chart, err := Lookup(req.Kind)
	if err != nil {
		return nil, err
	}
	return validateWith(req, chart.Constraints())
}

type checker struct {
	req     *Request
	c       Constraints
	args    *Args
	present map[string]bool
	lengths map[string]int
	grids   map[string]gridInfo
	flat    map[string]bool
	names   map[string][]string
	// defaulted marks absent optional scalars filled from Defaults.
	defaulted map[string]bool
}

func validateWith(req Request, c Constraints) (*Args, error) {
	ck := &checker{
		req:     &req,
		c:       c,
		args:    &Args{Kind: req.Kind},
		present: make(map[string]bool),
		lengths: make(map[string]int),
		grids:   make(map[string]gridInfo),
		flat:    make(map[string]bool),
		names:   make(map[string][]string),

		defaulted: make(map[string]bool),
	}
	for _, phase := range []func() error{ck.types, ck.matchLengths, ck.nonEmpty, ck.scalarDefaults, ck.domain, ck.options} {
		if err := phase(); err != nil {
			return nil, err
		}
	}
	ck.applyDefaults()
	return ck.args, nil
}

func (ck *checker) fail(class ErrorClass, field, format string, a ...any) error {
	reason := fmt.Sprintf(format, a...)
	if class == ClassType {
		return typeError(ck.req.Kind, field, reason)
	}
	return valueError(ck.req.Kind, field, reason)
}

func requestField(r *Request, name string) any {
	switch name {
	case "data":
		return r.Data
	case "labels":
		return r.Labels
	case "x":
		return r.X
	case "y":
		return r.Y
	case "theta":
		return r.Theta
	case "r":
		return r.R
	case "yerr":
		return r.YErr
	case "xerr":
		return r.XErr
	case "bins":
		return r.Bins
	case "colors":
		return r.Colors
	case "series":
		return r.Series
	}
	return nil
}

func (ck *checker) setVector(name string, v []float64) {
	switch name {
	case "data":
		ck.args.Values = v
	case "x":
		ck.args.X = v
	case "y":
		ck.args.Y = v
	case "theta":
		ck.args.Theta = v
	case "r":
		ck.args.R = v
	case "yerr":
		ck.args.YErr = v
	case "xerr":
		ck.args.XErr = v
	}
}

// types is phase one: every present field must have the declared shape.
func (ck *checker) types() error {
	for _, f := range ck.c.Fields {
		v := requestField(ck.req, f.Name)
		if v == nil {
			if f.Required && f.Shape != ShapeInt {
				return ck.fail(ClassType, f.Name, "%s is required and must be a %s", f.Name, f.Shape)
			}
			continue
		}
		ck.present[f.Name] = true

		if f.Shape == ShapeInt {
			n, ok := toInt(v)
			if !ok {
				return ck.fail(ClassType, f.Name, "%s must be an integer, got %T", f.Name, v)
			}
			ck.args.Bins = n
			continue
		}
		if !isSequence(v) {
			return ck.fail(ClassType, f.Name, "%s must be a %s, got %T", f.Name, f.Shape, v)
		}
		ck.lengths[f.Name] = len(elements(v))

		switch f.Shape {
		case ShapeVector:
			vec, ok := vector(v)
			if !ok {
				return ck.fail(ClassType, f.Name, "%s must contain only numbers", f.Name)
			}
			ck.setVector(f.Name, vec)
		case ShapeNested:
			groups, flat, ok := nested(v)
			if !ok {
				return ck.fail(ClassType, f.Name, "%s must contain only numeric sequences", f.Name)
			}
			ck.flat[f.Name] = flat
			ck.args.Groups = groups
		case ShapeGrid:
			info, ok := grid(v)
			if !ok {
				return ck.fail(ClassType, f.Name, "%s must contain only numbers", f.Name)
			}
			ck.grids[f.Name] = info
			ck.args.Grid = info.rows
		case ShapeLabels:
			ls, ok := labels(v)
			if !ok {
				return ck.fail(ClassType, f.Name, "%s must contain only strings or numbers", f.Name)
			}
			ck.args.Labels = ls
		case ShapeNames:
			ns, ok := strs(v)
			if !ok {
				return ck.fail(ClassType, f.Name, "%s must contain only strings", f.Name)
			}
			ck.names[f.Name] = ns
			if f.Name == "series" {
				ck.args.Series = ns
			}
		}
	}
	return nil
}

// matchLengths is phase two.
func (ck *checker) matchLengths() error {
	for _, group := range ck.c.Match {
		first := ""
		for _, name := range group {
			if !ck.present[name] {
				continue
			}
			if first == "" {
				first = name
				continue
			}
			if ck.lengths[name] != ck.lengths[first] {
				return ck.fail(ClassValue, name, "%s and %s must have the same length (%d != %d)",
					first, name, ck.lengths[first], ck.lengths[name])
			}
		}
	}
	return nil
}

// nonEmpty is phase three.
func (ck *checker) nonEmpty() error {
	for _, f := range ck.c.Fields {
		if !f.Required || f.Shape == ShapeInt || !ck.present[f.Name] {
			continue
		}
		empty := ck.lengths[f.Name] == 0
		if info, ok := ck.grids[f.Name]; ok {
			empty = info.size == 0
		}
		if empty {
			return ck.fail(ClassValue, f.Name, "%s cannot be empty", f.Name)
		}
	}
	return nil
}

// domain is phase four: structural checks implied by the shape, then the
// kind's rules in declaration order.
func (ck *checker) domain() error {
	for _, f := range ck.c.Fields {
		if !ck.present[f.Name] {
			continue
		}
		switch f.Shape {
		case ShapeGrid:
			info := ck.grids[f.Name]
			if info.ndim != 2 {
				return ck.fail(ClassValue, f.Name, "%s must be 2-dimensional, got %d dimension(s)", f.Name, info.ndim)
			}
			if info.ragged {
				return ck.fail(ClassValue, f.Name, "%s rows must all have the same length", f.Name)
			}
		case ShapeNested:
			if ck.flat[f.Name] {
				return ck.fail(ClassValue, f.Name, "%s must be a sequence of sequences", f.Name)
			}
		}
	}
	for _, r := range ck.c.Rules {
		if _, declared := ck.c.Field(r.Field); declared && !ck.present[r.Field] && !ck.defaulted[r.Field] {
			continue
		}
		if !r.Check(ck.args) {
			return ck.fail(ClassValue, r.Field, "%s", r.Reason)
		}
	}
	return nil
}

// scalarDefaults fills absent optional scalars from the kind's defaults so
// domain rules see the effective value.
func (ck *checker) scalarDefaults() error {
	for _, f := range ck.c.Fields {
		if f.Shape != ShapeInt || ck.present[f.Name] {
			continue
		}
		switch f.Name {
		case "bins":
			if ck.c.Defaults.Bins > 0 {
				ck.args.Bins = ck.c.Defaults.Bins
				ck.defaulted[f.Name] = true
			}
		}
	}
	return nil
}

var markers = map[string]bool{
	"": true, "o": true, ".": true, "s": true, "^": true, "v": true,
	"x": true, "+": true, "*": true, "d": true, "D": true,
}

// options parses the styling options the kind honors. Options a kind does
// not read are ignored.
func (ck *checker) options() error {
	r, a := ck.req, ck.args
	if ck.c.Honors(OptColor) && r.Color != "" {
		c, err := ParseColor(r.Color)
		if err != nil {
			return ck.fail(ClassValue, OptColor, "%v", err)
		}
		a.Color = c
	}
	if ck.c.Honors(OptLineWidth) {
		if math.IsNaN(r.LineWidth) || r.LineWidth < 0 {
			return ck.fail(ClassValue, OptLineWidth, "linewidth must be a non-negative number, got %v", r.LineWidth)
		}
		a.LineWidth = r.LineWidth
	}
	if ck.c.Honors(OptCmap) && r.Cmap != "" {
		if _, ok := LookupColormap(r.Cmap); !ok {
			return ck.fail(ClassValue, OptCmap, "%q is not a known colormap; supported: %s",
				r.Cmap, strings.Join(ColormapNames(), ", "))
		}
		a.Cmap = strings.ToLower(r.Cmap)
	}
	if ck.c.Honors(OptAspect) && r.Aspect != "" {
		asp := strings.ToLower(r.Aspect)
		if asp != "auto" && asp != "equal" {
			if f, err := strconv.ParseFloat(asp, 64); err != nil || f <= 0 {
				return ck.fail(ClassValue, OptAspect, "aspect must be auto, equal or a positive number, got %q", r.Aspect)
			}
		}
		a.Aspect = asp
	}
	if ck.c.Honors(OptMarker) {
		if !markers[r.Marker] {
			return ck.fail(ClassValue, OptMarker, "unrecognized marker %q", r.Marker)
		}
		a.Marker = r.Marker
	}
	a.Horizontal = ck.c.Honors(OptHorizontal) && r.Horizontal
	a.Density = ck.c.Honors(OptDensity) && r.Density

	for _, spec := range ck.names["colors"] {
		c, err := ParseColor(spec)
		if err != nil {
			return ck.fail(ClassValue, "colors", "%v", err)
		}
		a.Colors = append(a.Colors, c)
	}
	return nil
}

func (ck *checker) applyDefaults() {
	a, d := ck.args, ck.c.Defaults
	a.Title = ck.req.Title
	if a.Title == "" {
		a.Title = ck.req.Kind.DefaultTitle()
	}
	if a.Color.IsZero() {
		a.Color = d.Color
	}
	if a.LineWidth == 0 {
		a.LineWidth = d.LineWidth
	}
	if a.Cmap == "" {
		a.Cmap = d.Cmap
	}
	if a.Aspect == "" {
		a.Aspect = d.Aspect
	}
	if a.Bins == 0 {
		a.Bins = d.Bins
	}
}
