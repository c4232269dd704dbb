package cst

// CommentToken is one comment as it appears in the source.
type CommentToken struct {
	Text      string
	StartByte int
	EndByte   int
	StartRow  int
	EndRow    int
	Document  string
}

// ErrorKind classifies a ParseError.
type ErrorKind string

const (
	MissingToken    ErrorKind = "missing_token"
	UnexpectedToken ErrorKind = "unexpected_token"
)

// ParseError is a structured syntax error. Line and Column are 1-based.
type ParseError struct {
	Severity  string
	Kind      ErrorKind
	Message   string
	Expected  []string
	Found     string
	Line      int
	Column    int
	Document  string
	StartByte int
	EndByte   int
}

func (e ParseError) Error() string {
	return e.Message
}

// ParseResult is the complete output for one document.
type ParseResult struct {
	Document *DocumentNode
	Comments []CommentToken
	Source   []byte
	Success  bool
	Errors   []ParseError
}

// Source is a named document to parse.
type Source struct {
	Name string
	Text []byte
}

// Parser turns source text into a CST and a comment stream.
// Implementations are constructed explicitly and passed to their users.
type Parser interface {
	Parse(src Source) ParseResult
}

// ParseAll parses every source in order.
func ParseAll(p Parser, srcs ...Source) []ParseResult {
	out := make([]ParseResult, 0, len(srcs))
	for _, src := range srcs {
		out = append(out, p.Parse(src))
	}
	return out
}
