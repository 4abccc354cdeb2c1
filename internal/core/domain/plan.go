package domain

import "slices"

// Plan is an ordered list of package names where every package appears after its dependencies.
type Plan struct {
	names []string
	seen  map[string]struct{}
}

// NewPlan creates an empty plan.
func NewPlan() *Plan {
	return &Plan{seen: make(map[string]struct{})}
}

// Append adds a package to the end of the plan. It reports false if the package is already planned.
func (p *Plan) Append(name string) bool {
	if _, ok := p.seen[name]; ok {
		return false
	}
	p.seen[name] = struct{}{}
	p.names = append(p.names, name)
	return true
}

// Contains reports whether the package is part of the plan.
func (p *Plan) Contains(name string) bool {
	_, ok := p.seen[name]
	return ok
}

// Names returns the planned package names in installation order.
func (p *Plan) Names() []string {
	return slices.Clone(p.names)
}

// Len returns the number of planned packages.
func (p *Plan) Len() int {
	return len(p.names)
}

// Target returns the last planned package, which is the one the plan was resolved for.
func (p *Plan) Target() string {
	if len(p.names) == 0 {
		return ""
	}
	return p.names[len(p.names)-1]
}
