package level

import "fmt"

// FromRows builds tile codes from a compact text layout: '#' blocks, '.'
// is open floor and a digit is that tile code. It is meant for in-memory
// arenas and tests, not as a level file format.
func FromRows(rows ...string) ([][]int, error) {
	out := make([][]int, 0, len(rows))
	for y, row := range rows {
		codes := make([]int, 0, len(row))
		for x, r := range row {
			switch {
			case r == '#':
				codes = append(codes, TileBlocking)
			case r == '.':
				codes = append(codes, TileFloor)
			case r >= '0' && r <= '9':
				codes = append(codes, int(r-'0'))
			default:
				return nil, fmt.Errorf("level: unknown tile %q at %d,%d", r, x, y)
			}
		}
		out = append(out, codes)
	}
	return out, nil
}
