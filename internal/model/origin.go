// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file ties IR values back to their source text.
package model

import "github.com/specialistvlad/plangridgo/internal/cst"

// Origin identifies where a value came from. It is shared with the CST so a
// span can be carried from parser output to the IR without conversion.
type Origin = cst.Origin

// OriginOf returns a pointer to a copy of o.
func OriginOf(o cst.Origin) *Origin {
	return &o
}
