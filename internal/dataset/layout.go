package dataset

// Grid dimensions of the main table.
const (
	GridRows = 7
	GridCols = 18
)

// Categories is the fixed set of element classifications, in legend order.
var Categories = []string{
	"nonmetal", "noble-gas", "alkali-metal", "alkaline-earth",
	"metalloid", "transition-metal", "lanthanide", "actinide",
}

// Position is a 1-based (row, col) slot in the main grid.
type Position struct {
	Row, Col int
}

// Positions maps the atomic numbers of the main table to their slot. La
// and Ac have none; column 3 of rows 6 and 7 stays empty.
var Positions = buildPositions()

func buildPositions() map[int]Position {
	pos := make(map[int]Position, 90)
	place := func(row, col, first, last int) {
		for n := first; n <= last; n++ {
			pos[n] = Position{Row: row, Col: col + n - first}
		}
	}
	place(1, 1, 1, 1)
	place(1, 18, 2, 2)
	place(2, 1, 3, 4)
	place(2, 13, 5, 10)
	place(3, 1, 11, 12)
	place(3, 13, 13, 18)
	place(4, 1, 19, 36)
	place(5, 1, 37, 54)
	place(6, 1, 55, 56)
	place(6, 4, 72, 86)
	place(7, 1, 87, 88)
	place(7, 4, 104, 118)
	return pos
}

// InMainTable reports whether an element is drawn in the 18×7 grid.
// Lanthanides and actinides, La and Ac included, live in the auxiliary rows.
func InMainTable(number int) bool {
	return (number >= 1 && number <= 56) ||
		(number >= 72 && number <= 88) ||
		(number >= 104 && number <= 118)
}

// IsLanthanide and IsActinide select the two auxiliary rows.
func IsLanthanide(number int) bool { return number >= 57 && number <= 71 }

func IsActinide(number int) bool { return number >= 89 && number <= 103 }

// HasSeriesMarker reports whether the element's symbol carries the "*"
// pointing to the auxiliary rows.
func HasSeriesMarker(number int) bool {
	return number == 57 || number == 89
}
