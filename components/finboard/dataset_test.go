package finboard

import "testing"

func TestBuildDatasetShape(t *testing.T) {
	dataset := BuildDataset()
	if dataset.Len() != 70 {
		t.Fatalf("expected 70 observations, got %d", dataset.Len())
	}
	records := dataset.Records()
	first := records[0]
	if first.Company != CompanyDixon || first.Metric != "Current Ratio" || first.YearLabel != "Mar-21" {
		t.Fatalf("unexpected first record %#v", first)
	}
	afterDixonBlock := records[7]
	if afterDixonBlock.Company != CompanyHoneywell || afterDixonBlock.Metric != "Current Ratio" || afterDixonBlock.Year != 2021 {
		t.Fatalf("expected Honeywell block after Dixon's within a year, got %#v", afterDixonBlock)
	}
	last := records[len(records)-1]
	if last.Company != CompanyHoneywell || last.Metric != "Trade Receivable Turnover" || last.YearLabel != "Mar-25" {
		t.Fatalf("unexpected last record %#v", last)
	}
}

func TestDatasetYearAxis(t *testing.T) {
	dataset := BuildDataset()
	years := dataset.Years()
	if len(years) != 5 || years[0] != 2021 || years[4] != 2025 {
		t.Fatalf("unexpected years %v", years)
	}
	labels := dataset.YearLabels()
	if len(labels) != 5 || labels[0] != "Mar-21" || labels[4] != "Mar-25" {
		t.Fatalf("unexpected labels %v", labels)
	}
	yearMin, yearMax := dataset.YearBounds()
	if yearMin != 2021 || yearMax != 2025 {
		t.Fatalf("expected bounds 2021..2025, got %d..%d", yearMin, yearMax)
	}
}

func TestLatestValuePicksMostRecentYear(t *testing.T) {
	dataset := BuildDataset()
	value, label, ok := dataset.LatestValue(CompanyDixon, "Current Ratio")
	if !ok || value != 1.33 || label != "Mar-25" {
		t.Fatalf("expected 1.33 at Mar-25, got %v at %s (ok=%v)", value, label, ok)
	}
	value, label, ok = dataset.LatestValue(CompanyHoneywell, "Net Profit Margin")
	if !ok || value != 12.49 || label != "Mar-25" {
		t.Fatalf("expected 12.49 at Mar-25, got %v at %s (ok=%v)", value, label, ok)
	}
}

func TestLatestValueUnknownPairs(t *testing.T) {
	dataset := BuildDataset()
	if _, _, ok := dataset.LatestValue(CompanyDixon, "Operating Margin"); ok {
		t.Fatalf("expected no observation for unknown metric")
	}
	if _, _, ok := dataset.LatestValue(Company("Acme"), "Current Ratio"); ok {
		t.Fatalf("expected no observation for unknown company")
	}
}

func TestFilterMatchesAllConstraints(t *testing.T) {
	dataset := BuildDataset()
	liquidity := []string{"Current Ratio", "Quick Ratio"}
	both := []Company{CompanyDixon, CompanyHoneywell}

	records := dataset.Filter(both, liquidity, 2021, 2025)
	if len(records) != 20 {
		t.Fatalf("expected 20 liquidity records, got %d", len(records))
	}
	records = dataset.Filter(both, liquidity, 2023, 2024)
	if len(records) != 8 {
		t.Fatalf("expected 8 records in the 2023-2024 window, got %d", len(records))
	}
	for _, record := range records {
		if record.Year < 2023 || record.Year > 2024 {
			t.Fatalf("record %#v escapes the year window", record)
		}
	}
}

func TestFilterEmptySelections(t *testing.T) {
	dataset := BuildDataset()
	liquidity := []string{"Current Ratio", "Quick Ratio"}
	both := []Company{CompanyDixon, CompanyHoneywell}

	if records := dataset.Filter(nil, liquidity, 2021, 2025); len(records) != 0 {
		t.Fatalf("expected empty result without companies, got %d", len(records))
	}
	if records := dataset.Filter(both, nil, 2021, 2025); len(records) != 0 {
		t.Fatalf("expected empty result without metrics, got %d", len(records))
	}
	if records := dataset.Filter(both, liquidity, 2025, 2021); len(records) != 0 {
		t.Fatalf("expected empty result for inverted range, got %d", len(records))
	}
	if records := dataset.Filter([]Company{Company("Acme")}, liquidity, 2021, 2025); len(records) != 0 {
		t.Fatalf("expected empty result for unknown company, got %d", len(records))
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	dataset := BuildDataset()
	records := dataset.Records()
	records[0].Value = -1
	if dataset.Records()[0].Value == -1 {
		t.Fatalf("mutating the returned slice must not touch storage")
	}
}
