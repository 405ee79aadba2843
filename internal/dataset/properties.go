package dataset

import "fmt"

// ElectronConfig holds noble-gas notation for 1–36 and a shorthand by
// period block beyond that.
var ElectronConfig = NewTable(map[int]string{
	1: "1s¹", 2: "1s²",
	3: "[He] 2s¹", 4: "[He] 2s²", 5: "[He] 2s² 2p¹", 6: "[He] 2s² 2p²", 7: "[He] 2s² 2p³", 8: "[He] 2s² 2p⁴", 9: "[He] 2s² 2p⁵", 10: "[He] 2s² 2p⁶",
	11: "[Ne] 3s¹", 12: "[Ne] 3s²", 13: "[Ne] 3s² 3p¹", 14: "[Ne] 3s² 3p²", 15: "[Ne] 3s² 3p³", 16: "[Ne] 3s² 3p⁴", 17: "[Ne] 3s² 3p⁵", 18: "[Ne] 3s² 3p⁶",
	19: "[Ar] 4s¹", 20: "[Ar] 4s²", 21: "[Ar] 4s² 3d¹", 22: "[Ar] 4s² 3d²", 23: "[Ar] 4s² 3d³", 24: "[Ar] 4s¹ 3d⁵", 25: "[Ar] 4s² 3d⁵", 26: "[Ar] 4s² 3d⁶",
	27: "[Ar] 4s² 3d⁷", 28: "[Ar] 4s² 3d⁸", 29: "[Ar] 4s¹ 3d¹⁰", 30: "[Ar] 4s² 3d¹⁰", 31: "[Ar] 4s² 3d¹⁰ 4p¹", 32: "[Ar] 4s² 3d¹⁰ 4p²", 33: "[Ar] 4s² 3d¹⁰ 4p³",
	34: "[Ar] 4s² 3d¹⁰ 4p⁴", 35: "[Ar] 4s² 3d¹⁰ 4p⁵", 36: "[Ar] 4s² 3d¹⁰ 4p⁶",
}, func(n int) (string, bool) {
	switch {
	case n <= 36:
		return "[Ar] ...", true
	case n <= 54:
		return "[Kr] ...", true
	case n <= 86:
		return "[Xe] ...", true
	default:
		return "[Rn] ...", true
	}
})

var OxidationStates = NewTable(map[int]string{
	1: "+1, -1", 2: "+2", 3: "+1", 4: "+2", 5: "+3", 6: "+4, +2, -4", 7: "+5, +3, -3", 8: "-2",
	9: "-1", 11: "+1", 12: "+2", 13: "+3", 14: "+4, +2, -4", 15: "+5, +3, -3", 16: "+6, +4, -2", 17: "+7, +5, +3, +1, -1",
	19: "+1", 20: "+2", 26: "+3, +2", 29: "+2, +1", 30: "+2", 47: "+1", 82: "+2, +4",
}, Default("Variable"))

var ElectronShells = NewTable(map[int]string{
	1: "1", 2: "2", 3: "2, 1", 4: "2, 2", 5: "2, 3", 6: "2, 4", 7: "2, 5", 8: "2, 6", 9: "2, 7", 10: "2, 8",
	11: "2, 8, 1", 12: "2, 8, 2", 13: "2, 8, 3", 14: "2, 8, 4", 15: "2, 8, 5", 16: "2, 8, 6", 17: "2, 8, 7", 18: "2, 8, 8",
	19: "2, 8, 8, 1", 20: "2, 8, 8, 2",
}, Default("Variable"))

// Electronegativity is on the Pauling scale. Noble gases are not listed.
var Electronegativity = NewTable(map[int]float64{
	1: 2.20, 3: 0.98, 4: 1.57, 5: 2.04, 6: 2.55, 7: 3.04, 8: 3.44, 9: 3.98,
	11: 0.93, 12: 1.31, 13: 1.61, 14: 1.90, 15: 2.19, 16: 2.58, 17: 3.16,
	19: 0.82, 20: 1.00, 26: 1.83, 29: 1.90, 30: 1.65, 35: 2.96, 47: 1.93, 53: 2.66, 79: 2.54, 80: 2.00, 82: 2.33,
}, nil)

// MeltingPoint and BoilingPoint are in °C.
var MeltingPoint = NewTable(map[int]float64{
	1: -259, 2: -272, 3: 181, 4: 1287, 5: 2076, 6: 3550, 7: -210, 8: -218, 9: -220, 10: -249,
	11: 98, 12: 650, 13: 660, 14: 1414, 15: 44, 16: 113, 17: -101, 18: -189,
	19: 64, 20: 842, 26: 1538, 29: 1085, 30: 420, 35: -7, 47: 962, 53: 114, 79: 1064, 80: -39, 82: 328,
}, nil)

var BoilingPoint = NewTable(map[int]float64{
	1: -253, 2: -269, 3: 1342, 4: 2470, 5: 3927, 6: 4027, 7: -196, 8: -183, 9: -188, 10: -246,
	11: 883, 12: 1090, 13: 2467, 14: 2900, 15: 280, 16: 445, 17: -35, 18: -186,
	19: 759, 20: 1484, 26: 2861, 29: 2562, 30: 907, 35: 59, 47: 2212, 53: 184, 79: 2856, 80: 357, 82: 1749,
}, nil)

// Density is in g/cm³.
var Density = NewTable(map[int]float64{
	1: 0.00009, 2: 0.00018, 3: 0.534, 4: 1.85, 5: 2.34, 6: 2.26, 7: 0.00125, 8: 0.00143, 9: 0.0017, 10: 0.0009,
	11: 0.97, 12: 1.74, 13: 2.70, 14: 2.33, 15: 1.82, 16: 2.07, 17: 0.00321, 18: 0.00178,
	19: 0.86, 20: 1.54, 26: 7.87, 29: 8.96, 30: 7.14, 35: 3.12, 47: 10.5, 53: 4.93, 79: 19.3, 80: 13.55, 82: 11.34,
}, nil)

var Discovery = NewTable(map[int]string{
	1: "1766", 2: "1895", 3: "1817", 4: "1798", 5: "1808", 6: "Ancient", 7: "1772", 8: "1774", 9: "1886", 10: "1898",
	11: "1807", 12: "1755", 13: "1825", 14: "1823", 15: "1669", 16: "Ancient", 17: "1774", 18: "1894",
	19: "1807", 20: "1808", 26: "Ancient", 29: "Ancient", 30: "1746", 35: "1826", 47: "Ancient", 53: "1811", 79: "Ancient", 80: "Ancient", 82: "Ancient",
}, nil)

var descriptions = NewTable(map[int]string{
	1:  "The lightest and most abundant element in the universe. Essential for life and forms water (H₂O).",
	2:  "Inert noble gas, used in balloons and cryogenics. Second lightest element.",
	6:  "The basis of all life on Earth. Forms millions of compounds. Diamond and graphite are pure carbon.",
	7:  "Makes up 78% of Earth's atmosphere. Essential for proteins and DNA.",
	8:  "Most abundant element in Earth's crust. Essential for respiration. Forms water (H₂O).",
	11: "Highly reactive alkali metal. Common in salt (NaCl). Soft, silvery metal.",
	13: "Lightweight, corrosion-resistant metal. Most abundant metal in Earth's crust.",
	17: "Greenish-yellow toxic gas. Used in water treatment and many chemicals.",
	26: "Most common metal on Earth. Core component of steel. Essential for hemoglobin.",
	29: "Excellent conductor of electricity. Used in wiring and electronics.",
	47: "Best electrical conductor. Used in jewelry, electronics, and photography.",
	79: "Precious metal, resistant to corrosion. Used in jewelry and electronics.",
	80: "Only metal liquid at room temperature. Toxic. Used in thermometers.",
}, nil)

// Description returns the curated text, or a generic sentence naming the element.
func Description(number int, name, symbol string) string {
	if d, ok := descriptions.Lookup(number); ok {
		return d
	}
	return fmt.Sprintf("%s (%s) is an important chemical element with atomic number %d.", name, symbol, number)
}

var (
	gases   = map[int]bool{1: true, 2: true, 7: true, 8: true, 9: true, 10: true, 17: true, 18: true, 36: true, 54: true, 86: true}
	liquids = map[int]bool{35: true, 80: true}
)

// State returns the physical state at 25 °C.
func State(number int) string {
	switch {
	case gases[number]:
		return "Gas"
	case liquids[number]:
		return "Liquid"
	default:
		return "Solid"
	}
}

// Period returns the table row an atomic number belongs to.
func Period(number int) int {
	switch {
	case number <= 2:
		return 1
	case number <= 10:
		return 2
	case number <= 18:
		return 3
	case number <= 36:
		return 4
	case number <= 54:
		return 5
	case number <= 86:
		return 6
	default:
		return 7
	}
}
