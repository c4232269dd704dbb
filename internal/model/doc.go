// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model defines the intermediate representation (IR) of a plan: the
// decoded, semantically typed list of task and milestone resources together
// with the structured diagnostics produced while building and analysing it.
//
// # Core Concepts
//
//   - Resource: a task or milestone with an id, a completion flag and an
//     ordered list of attributes.
//
//   - Value: the closed set of attribute values. A Primitive holds a string,
//     number, boolean or null; a Reference names another resource; an Array
//     holds further values, possibly nested.
//
//   - Diagnostic: a typed problem report. Each diagnostic kind is its own
//     struct carrying only the fields relevant to it, identified by a stable
//     Code so callers can render or localise messages themselves.
//
//   - Origin: the source span every resource and attribute keeps from the
//     concrete syntax tree, used for diagnostics and for comment-preserving
//     export.
//
// Resources are immutable once decoded. Nothing in this package performs
// I/O or logging.
package model
