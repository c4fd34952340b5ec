package utils

import "math"

// CalculatePercentage returns score over totalPoints as a percentage rounded
// to two decimals. A zero-point exam yields 0 rather than dividing by zero.
func CalculatePercentage(score, totalPoints int) float64 {
	if totalPoints == 0 {
		return 0
	}
	pct := float64(score) / float64(totalPoints) * 100
	return math.Round(pct*100) / 100
}

// CalculateGrade maps a percentage to its letter grade band.
func CalculateGrade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B+"
	case percentage >= 60:
		return "B"
	case percentage >= 50:
		return "C+"
	case percentage >= 40:
		return "C"
	case percentage >= 30:
		return "D"
	default:
		return "F"
	}
}

// GetRemarks returns the wording that accompanies each grade band.
func GetRemarks(percentage float64) string {
	switch {
	case percentage >= 90:
		return "Excellent"
	case percentage >= 80:
		return "Very Good"
	case percentage >= 70:
		return "Good"
	case percentage >= 60:
		return "Above Average"
	case percentage >= 50:
		return "Average"
	case percentage >= 40:
		return "Below Average"
	case percentage >= 30:
		return "Poor"
	default:
		return "Very Poor"
	}
}
