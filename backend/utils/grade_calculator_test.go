package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePercentage(t *testing.T) {
	assert.Equal(t, 50.0, CalculatePercentage(5, 10))
	assert.Equal(t, 100.0, CalculatePercentage(10, 10))
	assert.Equal(t, 0.0, CalculatePercentage(0, 10))

	// rounded to two decimals
	assert.Equal(t, 33.33, CalculatePercentage(1, 3))
	assert.Equal(t, 66.67, CalculatePercentage(2, 3))
}

func TestCalculatePercentageZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, CalculatePercentage(5, 0))
	assert.Equal(t, 0.0, CalculatePercentage(0, 0))
}

func TestCalculateGrade(t *testing.T) {
	cases := []struct {
		percentage float64
		grade      string
		remarks    string
	}{
		{100, "A+", "Excellent"},
		{90, "A+", "Excellent"},
		{89.99, "A", "Very Good"},
		{80, "A", "Very Good"},
		{79.99, "B+", "Good"},
		{70, "B+", "Good"},
		{60, "B", "Above Average"},
		{50, "C+", "Average"},
		{40, "C", "Below Average"},
		{30, "D", "Poor"},
		{29.99, "F", "Very Poor"},
		{0, "F", "Very Poor"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.grade, CalculateGrade(tc.percentage), "percentage %v", tc.percentage)
		assert.Equal(t, tc.remarks, GetRemarks(tc.percentage), "percentage %v", tc.percentage)
	}
}
