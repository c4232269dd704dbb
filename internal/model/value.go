// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the attribute value union.
//
// The union is sealed: only the types in this file implement Value, so a
// type switch over Primitive, Reference and Array is exhaustive.
package model

// Value is an attribute value.
type Value interface {
	isValue()
}

// Primitive is a string, float64, bool or nil.
type Primitive struct {
	V any
}

// Reference names another resource by id.
type Reference struct {
	ID string
}

// Array is an ordered list of values. Arrays may nest.
type Array struct {
	Elements []Value
}

func (Primitive) isValue() {}
func (Reference) isValue() {}
func (Array) isValue()     {}

// String returns a string primitive.
func String(s string) Primitive { return Primitive{V: s} }

// Number returns a number primitive.
func Number(f float64) Primitive { return Primitive{V: f} }

// Bool returns a boolean primitive.
func Bool(b bool) Primitive { return Primitive{V: b} }

// Null returns the null primitive.
func Null() Primitive { return Primitive{} }

// IsNull reports whether p is the null primitive.
func (p Primitive) IsNull() bool { return p.V == nil }

// References returns the ids referenced by v in source order, unwrapping
// nested arrays.
func References(v Value) []string {
	var out []string
	var walk func(Value)
	walk = func(v Value) {
		switch val := v.(type) {
		case Reference:
			out = append(out, val.ID)
		case Array:
			for _, el := range val.Elements {
				walk(el)
			}
		}
	}
	walk(v)
	return out
}
