package engine

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	dc := from.Col - to.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// SumGrid adds every entry of a belief grid
func SumGrid(grid [][]float64) float64 {
	total := 0.0
	for _, row := range grid {
		for _, p := range row {
			total += p
		}
	}
	return total
}

// AnalyzeBudgetRisk describes how many surveys the remaining budget affords
func AnalyzeBudgetRisk(budget int, sensors SensorSet) string {
	cheapest := sensors.CheapestCost()
	switch {
	case budget <= 0:
		return "DEPLETED: No budget left, you must excavate now"
	case cheapest > 0 && budget < cheapest:
		return "DEPLETED: Budget cannot pay for any sensor, you must excavate now"
	case cheapest > 0 && budget < 3*cheapest:
		return "LOW: Only a few cheap surveys left"
	}
	return "OK: Budget sufficient"
}
