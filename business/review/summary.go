package review

import (
	"math"

	"bamkzStore/domain"
)

// Summarize averages approved star ratings, rounded to one decimal the way
// the storefront displays them.
func Summarize(ratings []int) domain.ReviewSummary {
	if len(ratings) == 0 {
		return domain.ReviewSummary{}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := math.Round(float64(sum)/float64(len(ratings))*10) / 10

	return domain.ReviewSummary{Rating: &avg, ReviewCount: len(ratings)}
}
