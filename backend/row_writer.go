package backend

// RowWriter is an optional optimization for bulk row updates.
// Backends that implement it receive whole dirty spans instead of single cells.
type RowWriter interface {
	SetRow(y int, startX int, cells []Cell)
}
