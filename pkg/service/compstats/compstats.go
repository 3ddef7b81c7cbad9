// Package compstats computes the summary statistics shown by the
// comparable-sales widget: mean, median, standard deviation, and
// outliers-by-sigma over unit prices.
package compstats

import (
	"math"
	"sort"
)

// DefaultSigma is the outlier threshold in standard deviations
const DefaultSigma = 2.0

// Summary holds the descriptive statistics of one value series
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Stdev    float64 `json:"stdev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Outliers []int   `json:"outliers"`
}

// Summarize computes the summary of a value series. Outliers are the indices
// of values more than sigma standard deviations from the mean; sigma <= 0
// falls back to DefaultSigma. An empty series yields a zero Summary.
func Summarize(values []float64, sigma float64) Summary {
	if len(values) == 0 {
		return Summary{Outliers: []int{}}
	}
	if sigma <= 0 {
		sigma = DefaultSigma
	}

	mean := mean(values)
	stdev := stdev(values, mean)

	summary := Summary{
		Count:    len(values),
		Mean:     mean,
		Median:   median(values),
		Stdev:    stdev,
		Min:      values[0],
		Max:      values[0],
		Outliers: []int{},
	}

	for i, v := range values {
		if v < summary.Min {
			summary.Min = v
		}
		if v > summary.Max {
			summary.Max = v
		}
		if stdev > 0 && math.Abs(v-mean) > sigma*stdev {
			summary.Outliers = append(summary.Outliers, i)
		}
	}

	return summary
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// stdev is the population standard deviation, matching the widget's display
func stdev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
