package finboard

import (
	"encoding/csv"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// missingValue is rendered wherever an observation does not exist.
const missingValue = "—"

// formatValue renders card values and bar labels with two decimals.
func formatValue(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// formatCell renders a table cell rounded to three decimals, trailing zeros
// trimmed.
func formatCell(value float64) string {
	rounded := math.Round(value*1000) / 1000
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// expandCompanies resolves the company selector into concrete companies.
// CompanyBoth fans out to Dixon and Honeywell; anything else passes through
// unchanged, so unknown selections simply match no records.
func expandCompanies(selection Company) []Company {
	if selection == CompanyBoth {
		return []Company{CompanyDixon, CompanyHoneywell}
	}
	return []Company{selection}
}

// BuildKPICards computes the card region. Only the company selection matters
// here; cards always show the most recent fiscal year on record, untouched by
// the group and year range controls.
func BuildKPICards(dataset *Dataset, state ControlState) CardsView {
	companies := expandCompanies(state.Company)
	cards := make([]KPICard, 0, len(kpiMetrics))
	for _, metric := range kpiMetrics {
		card := KPICard{Metric: metric, Slug: MetricSlug(metric)}
		for _, company := range companies {
			display := missingValue
			if value, _, ok := dataset.LatestValue(company, metric); ok {
				display = formatValue(value)
			}
			card.Values = append(card.Values, KPIValue{Company: company, Display: display})
		}
		cards = append(cards, card)
	}
	return CardsView{Company: state.Company, Cards: cards}
}

// BuildMainChart computes the grouped-bar comparison for the current group
// and year range. With CompanyBoth each series is one company/metric pair;
// with a single company each series is one metric. Pairs with no records in
// range contribute no series, so an unmatched filter yields an empty figure.
func BuildMainChart(dataset *Dataset, state ControlState) ChartView {
	metrics := GroupMetrics(state.Group)
	companies := expandCompanies(state.Company)
	records := dataset.Filter(companies, metrics, state.YearMin, state.YearMax)

	view := ChartView{
		XTitle: "Year",
		YTitle: "Value",
		XAxis:  yearAxis(records),
	}
	if state.Company == CompanyBoth {
		view.Title = "Comparison — grouped by metric & company"
	} else {
		view.Title = fmt.Sprintf("%s — %s", state.Company, GroupTitle(state.Group))
	}

	for _, company := range companies {
		for _, metric := range metrics {
			points := seriesPoints(records, company, metric)
			if len(points) == 0 {
				continue
			}
			name := metric
			if state.Company == CompanyBoth {
				name = fmt.Sprintf("%s — %s", company, metric)
			}
			view.Series = append(view.Series, ChartSeries{Name: name, Points: points})
		}
	}
	return view
}

// BuildSparkline computes the mini trend for the group's primary metric, one
// line per selected company. Unknown groups yield an empty view.
func BuildSparkline(dataset *Dataset, state ControlState) ChartView {
	var view ChartView
	primary, ok := PrimaryMetric(state.Group)
	if !ok {
		return view
	}
	companies := expandCompanies(state.Company)
	records := dataset.Filter(companies, []string{primary}, state.YearMin, state.YearMax)

	view.Title = fmt.Sprintf("Trend — %s", primary)
	view.XAxis = yearAxis(records)
	for _, company := range companies {
		points := seriesPoints(records, company, primary)
		if len(points) == 0 {
			continue
		}
		view.Series = append(view.Series, ChartSeries{Name: string(company), Points: points})
	}
	return view
}

// BuildTableText renders the filtered records as a pivoted CSV block, one
// row per fiscal year and one column per company/metric pair. An unmatched
// filter yields the empty string.
func BuildTableText(dataset *Dataset, state ControlState) string {
	metrics := GroupMetrics(state.Group)
	companies := expandCompanies(state.Company)
	records := dataset.Filter(companies, metrics, state.YearMin, state.YearMax)
	return renderPivotCSV(Pivot(records))
}

func renderPivotCSV(table *PivotTable) string {
	if table.Empty() {
		return ""
	}
	columns := table.Columns()

	header := make([]string, 0, len(columns)+1)
	header = append(header, "YearLabel")
	for _, column := range columns {
		header = append(header, fmt.Sprintf("%s — %s", column.Company, column.Metric))
	}
	rows := [][]string{header}

	for _, rowLabel := range table.Rows() {
		row := make([]string, 0, len(columns)+1)
		row = append(row, rowLabel)
		for _, column := range columns {
			value, ok := table.Cell(rowLabel, column)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, formatCell(value))
		}
		rows = append(rows, row)
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(rows); err != nil {
		return ""
	}
	return buf.String()
}

func yearAxis(records []Record) []string {
	type axisStep struct {
		year  int
		label string
	}
	seen := make(map[string]struct{})
	var steps []axisStep
	for _, record := range records {
		if _, ok := seen[record.YearLabel]; ok {
			continue
		}
		seen[record.YearLabel] = struct{}{}
		steps = append(steps, axisStep{year: record.Year, label: record.YearLabel})
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].year < steps[j].year })

	labels := make([]string, len(steps))
	for i, s := range steps {
		labels[i] = s.label
	}
	return labels
}

func seriesPoints(records []Record, company Company, metric string) []ChartPoint {
	series := SeriesFor(records, company, metric)
	if len(series) == 0 {
		return nil
	}
	points := make([]ChartPoint, len(series))
	for i, step := range series {
		points[i] = ChartPoint{Label: step.YearLabel, Value: step.Value, Display: formatValue(step.Value)}
	}
	return points
}
