package models

import "testing"

func TestNumericSummaryTableDataset(t *testing.T) {
	half := 0.5
	table := NumericSummaryTable{
		{Column: "a", MissingFraction: &half, Max: &half},
		{Column: "b"},
	}
	ds := table.Dataset("x_numeric_summary")

	if ds.Len() != 2 || ds.Width() != len(NumericSummaryHeader) {
		t.Fatalf("unexpected shape %dx%d", ds.Len(), ds.Width())
	}
	row := ds.Row(0)
	if row[0] != "a" || row[1] != 0.5 || row[2] != 0.5 || row[3] != nil {
		t.Errorf("unexpected first row %v", row)
	}
	if c, _ := ds.Column("column"); c.Kind != KindOther {
		t.Error("column name field should not be numeric")
	}
	if c, _ := ds.Column("variance"); c.Kind != KindNumeric {
		t.Error("variance field should be numeric")
	}
}

func TestCategoricalSummaryTableDatasetEmpty(t *testing.T) {
	ds := CategoricalSummaryTable{}.Dataset("empty")
	if ds.Len() != 0 {
		t.Fatalf("expected no rows, got %d", ds.Len())
	}
	if got := ds.ColumnNames(); len(got) != len(CategoricalSummaryHeader) || got[3] != "mode" {
		t.Errorf("unexpected header %v", got)
	}
	if c, _ := ds.Column("mode"); c.Kind != KindOther {
		t.Error("mode field should not be numeric")
	}
}
