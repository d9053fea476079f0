package action

import (
	"fmt"
	"sort"
)

// Machine is an explicit transition table: (action, from-state) -> to-state.
// A pair missing from the table is refused.
type Machine[S ~string] struct {
	entity      string
	transitions map[Name]map[S]S
}

func NewMachine[S ~string](entity string) *Machine[S] {
	return &Machine[S]{entity: entity, transitions: make(map[Name]map[S]S)}
}

// Allow lets name move any of from to to.
func (m *Machine[S]) Allow(name Name, to S, from ...S) *Machine[S] {
	edges := m.edges(name)
	for _, f := range from {
		edges[f] = to
	}
	return m
}

// Stay lets name run from any of from without changing state.
func (m *Machine[S]) Stay(name Name, from ...S) *Machine[S] {
	edges := m.edges(name)
	for _, f := range from {
		edges[f] = f
	}
	return m
}

func (m *Machine[S]) edges(name Name) map[S]S {
	edges, ok := m.transitions[name]
	if !ok {
		edges = make(map[S]S)
		m.transitions[name] = edges
	}
	return edges
}

// Next returns the state name leads to from from.
func (m *Machine[S]) Next(name Name, from S) (S, error) {
	edges, ok := m.transitions[name]
	if !ok {
		return from, fmt.Errorf("%s %s: %w", m.entity, name, ErrUnknownAction)
	}
	to, ok := edges[from]
	if !ok {
		return from, TransitionError{Entity: m.entity, Action: name, From: string(from)}
	}
	return to, nil
}

// Actions lists the actions available from state, sorted by name.
func (m *Machine[S]) Actions(from S) []Name {
	var names []Name
	for name, edges := range m.transitions {
		if _, ok := edges[from]; ok {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
