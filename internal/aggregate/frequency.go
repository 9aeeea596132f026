package aggregate

import (
	"sort"

	"github.com/juto-shogan/customer-support-case-analysis/internal/model"
)

// ValueCounts builds a frequency table over the given column values, ordered
// by descending count. Ties are broken lexically so the output is
// deterministic across runs.
func ValueCounts(values []string) []model.Bucket {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	buckets := make([]model.Bucket, 0, len(counts))
	for v, c := range counts {
		buckets = append(buckets, model.Bucket{Value: v, Count: c})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Value < buckets[j].Value
	})
	return buckets
}

// TopN truncates a frequency table to its n highest-count buckets
func TopN(buckets []model.Bucket, n int) []model.Bucket {
	if n <= 0 || n >= len(buckets) {
		return buckets
	}
	return buckets[:n]
}

// Ascending returns the buckets in ascending count order, for horizontal
// displays where the largest bar sits at one visual end.
func Ascending(buckets []model.Bucket) []model.Bucket {
	out := make([]model.Bucket, len(buckets))
	for i, b := range buckets {
		out[len(buckets)-1-i] = b
	}
	return out
}

// Total sums the counts of a frequency table
func Total(buckets []model.Bucket) int {
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	return total
}
