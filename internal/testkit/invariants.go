package testkit

import (
	"fmt"
	"slices"
)

// CheckSortedUnique verifies the selection invariants on one axis:
// 1) indices are sorted ascending
// 2) no index appears twice
// 3) sorting again is a no-op
func CheckSortedUnique(indices []uint) error {
	for i := 1; i < len(indices); i++ {
		if indices[i-1] > indices[i] {
			return fmt.Errorf("indices not sorted at %d: %d > %d", i, indices[i-1], indices[i])
		}
		if indices[i-1] == indices[i] {
			return fmt.Errorf("duplicate index %d at %d", indices[i], i)
		}
	}
	resorted := slices.Clone(indices)
	slices.Sort(resorted)
	if !slices.Equal(resorted, indices) {
		return fmt.Errorf("re-sorting changed the indices")
	}
	return nil
}

// CheckRectangular verifies that every row of a grid has the same width and
// returns that width. An empty grid has width 0.
func CheckRectangular(rows [][]string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return 0, fmt.Errorf("row %d has %d cells, want %d", i, len(row), width)
		}
	}
	return width, nil
}
