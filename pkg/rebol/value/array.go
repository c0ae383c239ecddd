package value

// Array is an ordered sequence of cells with source provenance. Line is
// the line where the aggregate's opener appeared. TailNewline records a
// newline before the closing bracket so molding can round-trip layout.
type Array struct {
	Cells       []Cell
	File        string
	Line        int
	TailNewline bool
}

// NewArray allocates an empty array.
func NewArray() *Array {
	return &Array{}
}

// Len returns the number of cells.
func (a *Array) Len() int {
	return len(a.Cells)
}

// At returns the cell at index i.
func (a *Array) At(i int) *Cell {
	return &a.Cells[i]
}

// Head returns the first cell, or nil when empty.
func (a *Array) Head() *Cell {
	if len(a.Cells) == 0 {
		return nil
	}
	return &a.Cells[0]
}

// Append adds a cell at the tail.
func (a *Array) Append(c Cell) {
	a.Cells = append(a.Cells, c)
}
