package cst

// DocumentNode is the root of one parsed document.
type DocumentNode struct {
	Name      string
	Resources []ResourceNode
	Origin    Origin
}

// ResourceNode is a top-level block such as `task build complete { ... }`.
// Labels hold everything after the type keyword, in source order.
type ResourceNode struct {
	Type       string
	Labels     []LabelNode
	Attributes []AttributeNode
	Blocks     []BlockNode
	// Header spans the block type and labels, up to and including `{`.
	Header Origin
	Origin Origin
}

// LabelNode is one label of a resource header.
type LabelNode struct {
	Text   string
	Quoted bool
	Origin Origin
}

// AttributeNode is a `key = value` line inside a resource body.
type AttributeNode struct {
	Key    string
	Value  ValueNode
	Raw    string
	Origin Origin
}

// BlockNode records a nested block. The DSL has no nested blocks, so only
// the span is kept for diagnostics.
type BlockNode struct {
	Type   string
	Origin Origin
}

// ValueNode is the closed set of attribute value shapes.
type ValueNode interface {
	valueNode()
	Span() Origin
}

// LiteralKind classifies a LiteralNode.
type LiteralKind string

const (
	LiteralString LiteralKind = "string"
	LiteralNumber LiteralKind = "number"
	LiteralBool   LiteralKind = "bool"
	LiteralNull   LiteralKind = "null"
)

// LiteralNode is a string, number, boolean or null literal. For strings Text
// is the unquoted value; for the other kinds it is the source text.
type LiteralNode struct {
	Kind   LiteralKind
	Text   string
	Origin Origin
}

// IdentNode is a bare identifier in value position.
type IdentNode struct {
	Name   string
	Origin Origin
}

// TupleNode is a bracketed list.
type TupleNode struct {
	Elements []ValueNode
	Origin   Origin
}

// UnsupportedNode is any expression shape the DSL does not model.
type UnsupportedNode struct {
	Shape  string
	Raw    string
	Origin Origin
}

func (LiteralNode) valueNode()     {}
func (IdentNode) valueNode()       {}
func (TupleNode) valueNode()       {}
func (UnsupportedNode) valueNode() {}

func (n LiteralNode) Span() Origin     { return n.Origin }
func (n IdentNode) Span() Origin       { return n.Origin }
func (n TupleNode) Span() Origin       { return n.Origin }
func (n UnsupportedNode) Span() Origin { return n.Origin }
