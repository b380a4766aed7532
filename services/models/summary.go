package models

// NumericSummary holds the descriptive statistics of one numeric column.
// A nil field is an undefined aggregate (no observations, or a single one for Variance).
type NumericSummary struct {
	Column          string   `json:"Column"`
	MissingFraction *float64 `json:"MissingFraction"`
	Max             *float64 `json:"Max"`
	Min             *float64 `json:"Min"`
	Mean            *float64 `json:"Mean"`
	Median          *float64 `json:"Median"`
	Variance        *float64 `json:"Variance"`
	Quantile10      *float64 `json:"Quantile10"`
	Quantile90      *float64 `json:"Quantile90"`
	Quartile1       *float64 `json:"Quartile1"`
	Quartile3       *float64 `json:"Quartile3"`
}

// CategoricalSummary holds the descriptive statistics of one non-numeric column.
type CategoricalSummary struct {
	Column          string   `json:"Column"`
	MissingFraction *float64 `json:"MissingFraction"`
	DistinctCount   int      `json:"DistinctCount"`
	Mode            any      `json:"Mode"`
}

// NumericSummaryTable has one record per numeric column of the summarized dataset.
type NumericSummaryTable []NumericSummary

// CategoricalSummaryTable has one record per non-numeric column of the summarized dataset.
type CategoricalSummaryTable []CategoricalSummary

// NumericSummaryHeader is the field order of a numeric summary record.
var NumericSummaryHeader = []string{
	"column", "missing_fraction", "max", "min", "mean", "median", "variance",
	"quantile_0.1", "quantile_0.9", "quartile_1", "quartile_3",
}

// CategoricalSummaryHeader is the field order of a categorical summary record.
var CategoricalSummaryHeader = []string{
	"column", "missing_fraction", "distinct_count", "mode",
}

// Cells returns the record as dataset cells in NumericSummaryHeader order.
func (s NumericSummary) Cells() []any {
	return []any{
		s.Column,
		floatCell(s.MissingFraction),
		floatCell(s.Max),
		floatCell(s.Min),
		floatCell(s.Mean),
		floatCell(s.Median),
		floatCell(s.Variance),
		floatCell(s.Quantile10),
		floatCell(s.Quantile90),
		floatCell(s.Quartile1),
		floatCell(s.Quartile3),
	}
}

// Cells returns the record as dataset cells in CategoricalSummaryHeader order.
func (s CategoricalSummary) Cells() []any {
	return []any{s.Column, floatCell(s.MissingFraction), int64(s.DistinctCount), s.Mode}
}

// Dataset turns the summary into a Dataset so it can be rendered or persisted
// like any query result.
func (t NumericSummaryTable) Dataset(name string) *Dataset {
	rows := make([][]any, len(t))
	for i, s := range t {
		rows[i] = s.Cells()
	}
	return summaryDataset(name, NumericSummaryHeader, rows, 1)
}

// Dataset turns the summary into a Dataset.
func (t CategoricalSummaryTable) Dataset(name string) *Dataset {
	rows := make([][]any, len(t))
	for i, s := range t {
		rows[i] = s.Cells()
	}
	ds := summaryDataset(name, CategoricalSummaryHeader, rows, 1)
	// mode keeps whatever type the summarized column had
	ds.columns[3].Kind = KindOther
	return ds
}

// summaryDataset marks every column from firstNumeric on as numeric.
func summaryDataset(name string, header []string, rows [][]any, firstNumeric int) *Dataset {
	columns := make([]Column, len(header))
	index := make(map[string]int, len(header))
	for i, h := range header {
		kind := KindOther
		if i >= firstNumeric {
			kind = KindNumeric
		}
		columns[i] = Column{Name: h, Kind: kind}
		index[h] = i
	}
	return &Dataset{name: name, columns: columns, index: index, rows: rows}
}

func floatCell(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
