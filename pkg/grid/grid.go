// Package grid maps linear cell indexes onto a fixed-width character grid.
package grid

// GetGridCoords returns the column and row of cell index in a grid that is
// cols cells wide.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// Wrap splits s into rows of at most cols runes. An empty string yields a
// single empty row.
func Wrap(s string, cols int) []string {
	runes := []rune(s)
	if len(runes) == 0 || cols <= 0 {
		return []string{s}
	}
	var rows []string
	for i := 0; i < len(runes); i += cols {
		end := i + cols
		if end > len(runes) {
			end = len(runes)
		}
		rows = append(rows, string(runes[i:end]))
	}
	return rows
}

// Tail returns the last n rows of rows.
func Tail(rows []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}
