// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Resource, the unit of the IR.
package model

// ResourceType is the block keyword of a resource.
type ResourceType string

const (
	TypeTask      ResourceType = "task"
	TypeMilestone ResourceType = "milestone"
)

// DependsOnKey is the attribute whose references define dependency edges.
const DependsOnKey = "depends_on"

// CompleteKeyword is the header modifier marking a task as done.
const CompleteKeyword = "complete"

// Valid reports whether t is a known resource type.
func (t ResourceType) Valid() bool {
	return t == TypeTask || t == TypeMilestone
}

// SupportsComplete reports whether the complete keyword has meaning for t.
func (t ResourceType) SupportsComplete() bool {
	return t == TypeTask
}

// Resource is a decoded task or milestone.
type Resource struct {
	Type       ResourceType
	ID         string
	Complete   bool
	Attributes []Attribute
	Origin     *Origin
}

// Attribute is one key = value pair. Raw holds the original value text when
// the attribute came from source.
type Attribute struct {
	Key    string
	Value  Value
	Raw    string
	Origin *Origin
}

// Attribute returns the first attribute named key.
func (r Resource) Attribute(key string) (Attribute, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a, true
		}
	}
	return Attribute{}, false
}

// Dependencies returns the ids listed in depends_on, in source order and
// without duplicates.
func (r Resource) Dependencies() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, a := range r.Attributes {
		if a.Key != DependsOnKey {
			continue
		}
		for _, id := range References(a.Value) {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// DependencyOrigin returns the span of the depends_on attribute, if any.
func (r Resource) DependencyOrigin() *Origin {
	if a, ok := r.Attribute(DependsOnKey); ok && a.Origin != nil {
		return a.Origin
	}
	return r.Origin
}

// Document is a validated IR: the resource list of a decode that produced
// no errors.
type Document struct {
	Resources []Resource
}
