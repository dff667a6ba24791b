package tasks

import (
	"slices"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

var pitchClasses = []string{"C", "C♯/D♭", "D", "D♯/E♭", "E", "F", "F♯/G♭", "G", "G♯/A♭", "A", "A♯/B♭", "B"}

// Mean returns the arithmetic mean of xs, 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// Median returns the middle value of xs, or the mean of the two middle values when len(xs) is even.
//
// xs is not modified.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// CountInts builds a frequency table.
func CountInts(values []int) map[int]int {
	counts := make(map[int]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	return counts
}

// ReleaseYear parses the year prefix of a catalog release date ("2002", "2002-08", "2002-08-26").
func ReleaseYear(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

// KeyName maps a pitch class code to its note name.
func KeyName(key int) string {
	if key < 0 || key >= len(pitchClasses) {
		return "Unknown"
	}
	return pitchClasses[key]
}

func toFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
