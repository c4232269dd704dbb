package cst

// Origin is a byte/row span inside a named document.
type Origin struct {
	StartByte int
	EndByte   int
	StartRow  int
	EndRow    int
	Document  string
}

// Contains reports whether the byte range [start, end) lies within o.
func (o Origin) Contains(start, end int) bool {
	return start >= o.StartByte && end <= o.EndByte
}
