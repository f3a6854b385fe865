package finboard

import "testing"

func TestSeriesForOrdersByYear(t *testing.T) {
	records := []Record{
		{Company: CompanyDixon, Metric: "Current Ratio", Value: 1.33, YearLabel: "Mar-25", Year: 2025},
		{Company: CompanyHoneywell, Metric: "Current Ratio", Value: 2.72, YearLabel: "Mar-21", Year: 2021},
		{Company: CompanyDixon, Metric: "Current Ratio", Value: 1.17, YearLabel: "Mar-21", Year: 2021},
		{Company: CompanyDixon, Metric: "Quick Ratio", Value: 1.12, YearLabel: "Mar-21", Year: 2021},
		{Company: CompanyDixon, Metric: "Current Ratio", Value: 1.07, YearLabel: "Mar-23", Year: 2023},
	}
	series := SeriesFor(records, CompanyDixon, "Current Ratio")
	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series))
	}
	wantLabels := []string{"Mar-21", "Mar-23", "Mar-25"}
	wantValues := []float64{1.17, 1.07, 1.33}
	for i := range series {
		if series[i].YearLabel != wantLabels[i] || series[i].Value != wantValues[i] {
			t.Fatalf("unexpected point %d: %#v", i, series[i])
		}
	}
}

func TestSeriesForNoMatch(t *testing.T) {
	records := BuildDataset().Records()
	if series := SeriesFor(records, Company("Acme"), "Current Ratio"); series != nil {
		t.Fatalf("expected nil series for unknown company, got %#v", series)
	}
	if series := SeriesFor(nil, CompanyDixon, "Current Ratio"); series != nil {
		t.Fatalf("expected nil series for empty records, got %#v", series)
	}
}

func TestPivotShapesRowsAndColumns(t *testing.T) {
	dataset := BuildDataset()
	records := dataset.Filter(
		[]Company{CompanyDixon, CompanyHoneywell},
		[]string{"Current Ratio", "Quick Ratio"},
		2021, 2025,
	)
	pivot := Pivot(records)
	if pivot.Empty() {
		t.Fatalf("expected populated pivot")
	}

	rows := pivot.Rows()
	if len(rows) != 5 || rows[0] != "Mar-21" || rows[4] != "Mar-25" {
		t.Fatalf("unexpected row order %v", rows)
	}

	columns := pivot.Columns()
	want := []PivotColumn{
		{Company: CompanyDixon, Metric: "Current Ratio"},
		{Company: CompanyDixon, Metric: "Quick Ratio"},
		{Company: CompanyHoneywell, Metric: "Current Ratio"},
		{Company: CompanyHoneywell, Metric: "Quick Ratio"},
	}
	if len(columns) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(columns))
	}
	for i, column := range want {
		if columns[i] != column {
			t.Fatalf("expected column %#v at position %d, got %#v", column, i, columns[i])
		}
	}

	value, ok := pivot.Cell("Mar-23", PivotColumn{Company: CompanyDixon, Metric: "Quick Ratio"})
	if !ok || value != 1.27 {
		t.Fatalf("expected 1.27 at Mar-23, got %v (ok=%v)", value, ok)
	}
	if _, ok := pivot.Cell("Mar-23", PivotColumn{Company: CompanyDixon, Metric: "Asset Turnover"}); ok {
		t.Fatalf("expected missing cell for column outside the pivot")
	}
}

func TestPivotEmptyInput(t *testing.T) {
	pivot := Pivot(nil)
	if !pivot.Empty() {
		t.Fatalf("expected empty pivot")
	}
	if rows := pivot.Rows(); len(rows) != 0 {
		t.Fatalf("expected no rows, got %v", rows)
	}
}
