package review

import (
	"fmt"
	"math"
)

const noReviewsBand = "No Reviews Yet"

// ratingBand maps a 1-10 average to its label.
func ratingBand(avg float64) string {
	switch {
	case avg >= 9:
		return "Outstanding"
	case avg >= 8:
		return "Excellent"
	case avg >= 7:
		return "Very Good"
	case avg >= 6:
		return "Good"
	case avg >= 5:
		return "Satisfactory"
	default:
		return "Needs Improvement"
	}
}

func computeStatistics(reviews []PerformanceReview) StatisticsResponse {
	if len(reviews) == 0 {
		return StatisticsResponse{Count: 0, Average: 0, Band: noReviewsBand}
	}

	sum := 0
	minRating := reviews[0].Rating
	maxRating := reviews[0].Rating
	for _, r := range reviews {
		sum += r.Rating
		if r.Rating < minRating {
			minRating = r.Rating
		}
		if r.Rating > maxRating {
			maxRating = r.Rating
		}
	}

	avg := round1(float64(sum) / float64(len(reviews)))
	return StatisticsResponse{
		Count:   len(reviews),
		Average: avg,
		Min:     minRating,
		Max:     maxRating,
		Band:    ratingBand(avg),
	}
}

// computeYearlyChart always returns twelve slots; months without a YYYY-MM
// labelled review stay at zero.
func computeYearlyChart(reviews []PerformanceReview, year int) []ChartPoint {
	points := make([]ChartPoint, 12)
	sums := make([]int, 12)

	for i := range points {
		points[i].Month = fmt.Sprintf("%04d-%02d", year, i+1)
	}

	for _, r := range reviews {
		var y, m int
		if _, err := fmt.Sscanf(r.Period, "%4d-%2d", &y, &m); err != nil {
			continue
		}
		if y != year || m < 1 || m > 12 {
			continue
		}
		sums[m-1] += r.Rating
		points[m-1].Count++
	}

	for i := range points {
		if points[i].Count > 0 {
			points[i].Average = round1(float64(sums[i]) / float64(points[i].Count))
		}
	}
	return points
}

// computeTrend compares the newest rating against the average of the rest.
// reviews arrive newest first.
func computeTrend(reviews []PerformanceReview) TrendResponse {
	if len(reviews) < 2 {
		return TrendResponse{Trend: "insufficient data", Samples: len(reviews)}
	}

	latest := float64(reviews[0].Rating)
	sum := 0
	for _, r := range reviews[1:] {
		sum += r.Rating
	}
	baseline := round1(float64(sum) / float64(len(reviews)-1))

	trend := "stable"
	switch {
	case latest-baseline > 1:
		trend = "improving"
	case baseline-latest > 1:
		trend = "declining"
	}

	return TrendResponse{
		Trend:    trend,
		Latest:   latest,
		Baseline: baseline,
		Samples:  len(reviews),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
