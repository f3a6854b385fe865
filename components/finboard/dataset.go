package finboard

// Fiscal year axis shared by every metric series. Index i of a metricSeries
// belongs to fiscalYears[i] / fiscalYearLabels[i].
var (
	fiscalYearLabels = []string{"Mar-21", "Mar-22", "Mar-23", "Mar-24", "Mar-25"}
	fiscalYears      = []int{2021, 2022, 2023, 2024, 2025}
)

// metricSeries holds one company's observations for a single metric.
type metricSeries struct {
	metric string
	values []float64
}

var dixonSeries = []metricSeries{
	{metric: "Current Ratio", values: []float64{1.17, 1.15, 1.07, 1.48, 1.33}},
	{metric: "Quick Ratio", values: []float64{1.12, 1.14, 1.27, 1.12, 1.01}},
	{metric: "Gross Profit Margin", values: []float64{4.04, 3.04, 4.33, 3.91, 3.25}},
	{metric: "Net Profit Margin", values: []float64{2.48, 1.78, 2.09, 2.08, 2.82}},
	{metric: "Inventory Turnover", values: []float64{15.48176253, 10.41597944, 10.42333314, 12.16973252, 12.69463956}},
	{metric: "Asset Turnover", values: []float64{2.27, 2.49, 2.60, 2.52, 2.30}},
	{metric: "Trade Receivable Turnover", values: []float64{11.84, 8.73, 7.93, 8.73, 8.31}},
}

var honeywellSeries = []metricSeries{
	{metric: "Current Ratio", values: []float64{2.72, 3.26, 3.41, 3.66, 3.45}},
	{metric: "Quick Ratio", values: []float64{2.61, 3.13, 3.22, 3.49, 3.24}},
	{metric: "Gross Profit Margin", values: []float64{17.75, 12.91, 13.54, 13.20, 12.65}},
	{metric: "Net Profit Margin", values: []float64{15.11, 11.50, 12.70, 12.35, 12.49}},
	{metric: "Inventory Turnover", values: []float64{31.89, 29.90, 20.94, 25.51, 17.66}},
	{metric: "Asset Turnover", values: []float64{1.28, 1.09, 1.14, 1.19, 1.10}},
	{metric: "Trade Receivable Turnover", values: []float64{3.58, 3.62, 4.28, 4.35, 4.20}},
}

// Dataset is the in-memory analytical table every view is computed from.
// Records are stored year-major (all companies and metrics for Mar-21, then
// Mar-22, and so on), with Dixon's metrics before Honeywell's within a year.
type Dataset struct {
	records []Record
}

// BuildDataset assembles the tidy record table from the per-company series.
func BuildDataset() *Dataset {
	companies := []struct {
		name   Company
		series []metricSeries
	}{
		{name: CompanyDixon, series: dixonSeries},
		{name: CompanyHoneywell, series: honeywellSeries},
	}

	records := make([]Record, 0, len(fiscalYears)*(len(dixonSeries)+len(honeywellSeries)))
	for i, year := range fiscalYears {
		for _, company := range companies {
			for _, series := range company.series {
				records = append(records, Record{
					Company:   company.name,
					Metric:    series.metric,
					Value:     series.values[i],
					YearLabel: fiscalYearLabels[i],
					Year:      year,
				})
			}
		}
	}
	return &Dataset{records: records}
}

// Records returns a copy of every observation in storage order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Len reports the number of observations.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Years returns the fiscal years covered by the table, ascending.
func (d *Dataset) Years() []int {
	out := make([]int, len(fiscalYears))
	copy(out, fiscalYears)
	return out
}

// YearLabels returns the display labels matching Years.
func (d *Dataset) YearLabels() []string {
	out := make([]string, len(fiscalYearLabels))
	copy(out, fiscalYearLabels)
	return out
}

// YearBounds reports the earliest and latest fiscal year in the table.
func (d *Dataset) YearBounds() (min, max int) {
	if len(fiscalYears) == 0 {
		return 0, 0
	}
	return fiscalYears[0], fiscalYears[len(fiscalYears)-1]
}

// Companies returns the companies present in the table.
func (d *Dataset) Companies() []Company {
	return []Company{CompanyDixon, CompanyHoneywell}
}

// LatestValue returns the most recent observation for a company/metric pair
// along with its year label. ok is false when no observation exists, which
// covers unknown companies and metrics alike.
func (d *Dataset) LatestValue(company Company, metric string) (value float64, yearLabel string, ok bool) {
	bestYear := 0
	for _, record := range d.records {
		if record.Company != company || record.Metric != metric {
			continue
		}
		if !ok || record.Year > bestYear {
			value = record.Value
			yearLabel = record.YearLabel
			bestYear = record.Year
			ok = true
		}
	}
	return value, yearLabel, ok
}

// Filter returns the observations matching every constraint: company in
// companies, metric in metrics, and year within [yearMin, yearMax]. Empty
// company or metric lists match nothing, and an inverted year range matches
// nothing; callers get an empty slice rather than an error.
func (d *Dataset) Filter(companies []Company, metrics []string, yearMin, yearMax int) []Record {
	companySet := make(map[Company]struct{}, len(companies))
	for _, company := range companies {
		companySet[company] = struct{}{}
	}
	metricSet := make(map[string]struct{}, len(metrics))
	for _, metric := range metrics {
		metricSet[metric] = struct{}{}
	}

	var out []Record
	for _, record := range d.records {
		if _, ok := companySet[record.Company]; !ok {
			continue
		}
		if _, ok := metricSet[record.Metric]; !ok {
			continue
		}
		if record.Year < yearMin || record.Year > yearMax {
			continue
		}
		out = append(out, record)
	}
	return out
}
