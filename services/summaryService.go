package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/amine-amaach/dbstats/services/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type summaryService struct{}

// NewSummaryService returns the descriptive-statistics service. It keeps no state.
func NewSummaryService() *summaryService {
	return &summaryService{}
}

// Numeric summarizes every numeric column of ds, left to right.
// Nulls are skipped; aggregates without enough observations are nil.
func (svc *summaryService) Numeric(ds *models.Dataset) models.NumericSummaryTable {
	table := models.NumericSummaryTable{}
	for _, col := range ds.ColumnsOfKind(models.KindNumeric) {
		cells := ds.Values(col.Name)
		xs := make([]float64, 0, len(cells))
		for _, c := range cells {
			if f, ok := models.ToFloat(c); ok && !math.IsNaN(f) {
				xs = append(xs, f)
			}
		}

		s := models.NumericSummary{
			Column:          col.Name,
			MissingFraction: missingFraction(len(cells)-len(xs), len(cells)),
		}
		if len(xs) > 0 {
			sorted := append([]float64(nil), xs...)
			sort.Float64s(sorted)
			s.Max = ptr(floats.Max(xs))
			s.Min = ptr(floats.Min(xs))
			s.Mean = ptr(stat.Mean(xs, nil))
			s.Median = ptr(quantile(sorted, 0.5))
			s.Quantile10 = ptr(quantile(sorted, 0.1))
			s.Quantile90 = ptr(quantile(sorted, 0.9))
			s.Quartile1 = ptr(quantile(sorted, 0.25))
			s.Quartile3 = ptr(quantile(sorted, 0.75))
		}
		if len(xs) > 1 {
			// unbiased, n-1 denominator
			s.Variance = ptr(stat.Variance(xs, nil))
		}
		table = append(table, s)
	}
	return table
}

// Categorical summarizes every non-numeric column of ds, left to right.
// Values are equal when they have the same Go type and CSV rendering. The mode is the most frequent
// value; among equally frequent values the first one encountered wins.
func (svc *summaryService) Categorical(ds *models.Dataset) models.CategoricalSummaryTable {
	table := models.CategoricalSummaryTable{}
	for _, col := range ds.ColumnsOfKind(models.KindOther) {
		cells := ds.Values(col.Name)
		counts := map[string]int{}
		var order []string
		first := map[string]any{}
		nulls := 0
		for _, c := range cells {
			if c == nil {
				nulls++
				continue
			}
			key := distinctKey(c)
			if _, ok := counts[key]; !ok {
				order = append(order, key)
				first[key] = c
			}
			counts[key]++
		}

		s := models.CategoricalSummary{
			Column:          col.Name,
			MissingFraction: missingFraction(nulls, len(cells)),
			DistinctCount:   len(order),
		}
		best := 0
		for _, key := range order {
			if counts[key] > best {
				best = counts[key]
				s.Mode = first[key]
			}
		}
		table = append(table, s)
	}
	return table
}

// distinctKey tells 1 and "1" apart in mixed columns.
func distinctKey(v any) string {
	return fmt.Sprintf("%T:%s", v, FormatCell(v))
}

func missingFraction(missing, total int) *float64 {
	if total == 0 {
		return nil
	}
	return ptr(float64(missing) / float64(total))
}

// quantile interpolates linearly between the order statistics of sorted,
// at position q*(n-1).
func quantile(sorted []float64, q float64) float64 {
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func ptr(f float64) *float64 { return &f }
