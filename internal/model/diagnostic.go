// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the structured diagnostics of the semantic layer.
//
// Diagnostics are values, never pre-formatted strings. Each kind carries the
// fields a renderer needs and nothing else; presentation lives elsewhere.
// Only errors invalidate a decoded document, warnings are recorded and the
// IR stays usable.
package model

// Severity is warning or error.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Code is the stable identifier of a diagnostic kind.
type Code string

const (
	CodeDuplicateCompleteKeyword         Code = "duplicate-complete-keyword"
	CodeCompleteOnUnsupportedType        Code = "complete-on-unsupported-type"
	CodeCompleteKeywordAttributeConflict Code = "complete-keyword-vs-attribute-conflict"
	CodeInvalidCompleteKeywordPosition   Code = "invalid-complete-keyword-position"
	CodeCircularDependency               Code = "circular-dependency"
	CodeDanglingDependency               Code = "dangling-dependency"
	CodeDuplicateID                      Code = "duplicate-id"

	CodeUnknownResourceType       Code = "unknown-resource-type"
	CodeMissingResourceID         Code = "missing-resource-id"
	CodeUnknownModifier           Code = "unknown-modifier"
	CodeUnsupportedBlock          Code = "unsupported-block"
	CodeUnsupportedAttributeValue Code = "unsupported-attribute-value"
	CodeUnsupportedArrayElement   Code = "unsupported-array-element"
	CodeInvalidDependencyValue    Code = "invalid-dependency-value"
)

// Diagnostic is implemented by every diagnostic kind in this file.
type Diagnostic interface {
	Code() Code
	Severity() Severity
	// Location returns the primary span, or nil when the problem has no
	// single location (a dependency cycle, for example).
	Location() *Origin
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity() == SeverityError {
			return true
		}
	}
	return false
}

// DuplicateCompleteKeyword: `complete` appears more than once in a header.
type DuplicateCompleteKeyword struct {
	ResourceID string
	At         *Origin
}

// CompleteOnUnsupportedType: `complete` on a resource type that ignores it.
type CompleteOnUnsupportedType struct {
	ResourceID   string
	ResourceType ResourceType
	At           *Origin
}

// CompleteKeywordAttributeConflict: the header says complete but the body
// sets `complete` to something other than true. The keyword wins.
type CompleteKeywordAttributeConflict struct {
	ResourceID     string
	AttributeValue string
	At             *Origin
}

// InvalidCompleteKeywordPosition: `complete` where the id belongs. This
// invalidates the whole document.
type InvalidCompleteKeywordPosition struct {
	ResourceType ResourceType
	At           *Origin
}

// CircularDependency reports one canonical cycle; Nodes[0] == Nodes[len-1].
type CircularDependency struct {
	Nodes []string
}

// DanglingDependency: a depends_on reference to an id no resource has.
type DanglingDependency struct {
	DependentID   string
	DependentType ResourceType
	MissingID     string
	At            *Origin
}

// DuplicateID: a later resource reused an id. Kept is the first occurrence,
// Dropped the one removed from the IR.
type DuplicateID struct {
	ID      string
	Type    ResourceType
	Kept    *Origin
	Dropped *Origin
}

// UnknownResourceType: a top-level block that is neither task nor milestone.
type UnknownResourceType struct {
	Type string
	At   *Origin
}

// MissingResourceID: a resource block without an id label.
type MissingResourceID struct {
	Type ResourceType
	At   *Origin
}

// UnknownModifier: a header label after the id other than `complete`.
type UnknownModifier struct {
	ResourceID string
	Modifier   string
	At         *Origin
}

// UnsupportedBlock: a nested block inside a resource body.
type UnsupportedBlock struct {
	ResourceID string
	BlockType  string
	At         *Origin
}

// UnsupportedAttributeValue: an attribute whose value shape has no IR form.
// The attribute is omitted.
type UnsupportedAttributeValue struct {
	ResourceID string
	Key        string
	Shape      string
	At         *Origin
}

// UnsupportedArrayElement: an array element whose shape has no IR form. The
// element is skipped, the rest of the array is kept.
type UnsupportedArrayElement struct {
	ResourceID string
	Key        string
	Shape      string
	At         *Origin
}

// InvalidDependencyValue: a depends_on entry that is not a reference.
type InvalidDependencyValue struct {
	ResourceID string
	Value      string
	At         *Origin
}

func (DuplicateCompleteKeyword) Code() Code         { return CodeDuplicateCompleteKeyword }
func (CompleteOnUnsupportedType) Code() Code        { return CodeCompleteOnUnsupportedType }
func (CompleteKeywordAttributeConflict) Code() Code { return CodeCompleteKeywordAttributeConflict }
func (InvalidCompleteKeywordPosition) Code() Code   { return CodeInvalidCompleteKeywordPosition }
func (CircularDependency) Code() Code               { return CodeCircularDependency }
func (DanglingDependency) Code() Code               { return CodeDanglingDependency }
func (DuplicateID) Code() Code                      { return CodeDuplicateID }
func (UnknownResourceType) Code() Code              { return CodeUnknownResourceType }
func (MissingResourceID) Code() Code                { return CodeMissingResourceID }
func (UnknownModifier) Code() Code                  { return CodeUnknownModifier }
func (UnsupportedBlock) Code() Code                 { return CodeUnsupportedBlock }
func (UnsupportedAttributeValue) Code() Code        { return CodeUnsupportedAttributeValue }
func (UnsupportedArrayElement) Code() Code          { return CodeUnsupportedArrayElement }
func (InvalidDependencyValue) Code() Code           { return CodeInvalidDependencyValue }

func (DuplicateCompleteKeyword) Severity() Severity         { return SeverityWarning }
func (CompleteOnUnsupportedType) Severity() Severity        { return SeverityWarning }
func (CompleteKeywordAttributeConflict) Severity() Severity { return SeverityWarning }
func (InvalidCompleteKeywordPosition) Severity() Severity   { return SeverityError }
func (CircularDependency) Severity() Severity               { return SeverityWarning }
func (DanglingDependency) Severity() Severity               { return SeverityWarning }
func (DuplicateID) Severity() Severity                      { return SeverityWarning }
func (UnknownResourceType) Severity() Severity              { return SeverityWarning }
func (MissingResourceID) Severity() Severity                { return SeverityWarning }
func (UnknownModifier) Severity() Severity                  { return SeverityWarning }
func (UnsupportedBlock) Severity() Severity                 { return SeverityWarning }
func (UnsupportedAttributeValue) Severity() Severity        { return SeverityWarning }
func (UnsupportedArrayElement) Severity() Severity          { return SeverityWarning }
func (InvalidDependencyValue) Severity() Severity           { return SeverityWarning }

func (d DuplicateCompleteKeyword) Location() *Origin         { return d.At }
func (d CompleteOnUnsupportedType) Location() *Origin        { return d.At }
func (d CompleteKeywordAttributeConflict) Location() *Origin { return d.At }
func (d InvalidCompleteKeywordPosition) Location() *Origin   { return d.At }
func (CircularDependency) Location() *Origin                 { return nil }
func (d DanglingDependency) Location() *Origin               { return d.At }
func (d DuplicateID) Location() *Origin                      { return d.Dropped }
func (d UnknownResourceType) Location() *Origin              { return d.At }
func (d MissingResourceID) Location() *Origin                { return d.At }
func (d UnknownModifier) Location() *Origin                  { return d.At }
func (d UnsupportedBlock) Location() *Origin                 { return d.At }
func (d UnsupportedAttributeValue) Location() *Origin        { return d.At }
func (d UnsupportedArrayElement) Location() *Origin          { return d.At }
func (d InvalidDependencyValue) Location() *Origin           { return d.At }
