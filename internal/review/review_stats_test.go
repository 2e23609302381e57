package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ratings(values ...int) []PerformanceReview {
	reviews := make([]PerformanceReview, len(values))
	for i, v := range values {
		reviews[i] = PerformanceReview{Rating: v}
	}
	return reviews
}

func TestComputeStatistics_NoReviews(t *testing.T) {
	stats := computeStatistics(nil)

	assert.Equal(t, 0, stats.Count)
	assert.Equal(t, 0.0, stats.Average)
	assert.Equal(t, "No Reviews Yet", stats.Band)
}

func TestComputeStatistics_AverageAndBand(t *testing.T) {
	stats := computeStatistics(ratings(6, 10))

	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 8.0, stats.Average)
	assert.Equal(t, 6, stats.Min)
	assert.Equal(t, 10, stats.Max)
	assert.Equal(t, "Excellent", stats.Band)
}

func TestComputeStatistics_AverageRoundsToOneDecimal(t *testing.T) {
	stats := computeStatistics(ratings(7, 8, 8))

	assert.Equal(t, 7.7, stats.Average)
	assert.Equal(t, "Very Good", stats.Band)
}

func TestRatingBand_Boundaries(t *testing.T) {
	cases := []struct {
		avg  float64
		band string
	}{
		{9.0, "Outstanding"},
		{8.9, "Excellent"},
		{8.0, "Excellent"},
		{7.0, "Very Good"},
		{6.0, "Good"},
		{5.0, "Satisfactory"},
		{4.9, "Needs Improvement"},
		{1.0, "Needs Improvement"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.band, ratingBand(tc.avg), "avg %v", tc.avg)
	}
}

func TestComputeYearlyChart_TwelveSlots(t *testing.T) {
	reviews := []PerformanceReview{
		{Period: "2025-01", Rating: 8},
		{Period: "2025-01", Rating: 6},
		{Period: "2025-03", Rating: 9},
		{Period: "Q4-2025", Rating: 10},
		{Period: "2024-01", Rating: 2},
	}

	points := computeYearlyChart(reviews, 2025)

	assert.Len(t, points, 12)
	assert.Equal(t, "2025-01", points[0].Month)
	assert.Equal(t, 7.0, points[0].Average)
	assert.Equal(t, 2, points[0].Count)
	assert.Equal(t, 9.0, points[2].Average)
	assert.Equal(t, 0.0, points[1].Average)
	assert.Equal(t, 0, points[11].Count)
}

func TestComputeTrend(t *testing.T) {
	assert.Equal(t, "insufficient data", computeTrend(ratings(7)).Trend)
	assert.Equal(t, "improving", computeTrend(ratings(9, 7, 8)).Trend)
	assert.Equal(t, "declining", computeTrend(ratings(5, 7, 8)).Trend)
	assert.Equal(t, "stable", computeTrend(ratings(8, 7, 8)).Trend)
}

func TestComputeTrend_UnitDifferenceIsStable(t *testing.T) {
	assert.Equal(t, "stable", computeTrend(ratings(8, 7)).Trend)
	assert.Equal(t, "stable", computeTrend(ratings(6, 7)).Trend)
	assert.Equal(t, "stable", computeTrend(ratings(8, 7, 7)).Trend)
	assert.Equal(t, "stable", computeTrend(ratings(6, 7, 7)).Trend)
}
