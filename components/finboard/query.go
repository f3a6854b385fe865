package finboard

import "sort"

// SeriesFor extracts the (year label, value) sequence for one company and
// metric from a record slice, ordered by fiscal year ascending. Records for
// other companies or metrics are ignored; no match yields nil.
func SeriesFor(records []Record, company Company, metric string) []SeriesPoint {
	type step struct {
		year  int
		point SeriesPoint
	}
	var steps []step
	for _, record := range records {
		if record.Company != company || record.Metric != metric {
			continue
		}
		steps = append(steps, step{
			year:  record.Year,
			point: SeriesPoint{YearLabel: record.YearLabel, Value: record.Value},
		})
	}
	if steps == nil {
		return nil
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].year < steps[j].year })

	out := make([]SeriesPoint, len(steps))
	for i, s := range steps {
		out[i] = s.point
	}
	return out
}

// PivotColumn identifies one value column of a pivoted table.
type PivotColumn struct {
	Company Company
	Metric  string
}

// PivotTable reshapes records into one row per fiscal year and one column
// per company/metric pair, the layout the data table and export render.
type PivotTable struct {
	rowLabels []string
	columns   []PivotColumn
	cells     map[string]map[PivotColumn]float64
}

// Pivot builds a PivotTable from records. Rows are ordered by fiscal year
// ascending, columns by company then metric name.
func Pivot(records []Record) *PivotTable {
	table := &PivotTable{cells: make(map[string]map[PivotColumn]float64)}

	type row struct {
		year  int
		label string
	}
	seenRows := make(map[string]int)
	seenCols := make(map[PivotColumn]struct{})
	var rows []row

	for _, record := range records {
		if _, ok := seenRows[record.YearLabel]; !ok {
			seenRows[record.YearLabel] = record.Year
			rows = append(rows, row{year: record.Year, label: record.YearLabel})
		}
		column := PivotColumn{Company: record.Company, Metric: record.Metric}
		if _, ok := seenCols[column]; !ok {
			seenCols[column] = struct{}{}
			table.columns = append(table.columns, column)
		}
		byColumn, ok := table.cells[record.YearLabel]
		if !ok {
			byColumn = make(map[PivotColumn]float64)
			table.cells[record.YearLabel] = byColumn
		}
		byColumn[column] = record.Value
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].year < rows[j].year })
	for _, r := range rows {
		table.rowLabels = append(table.rowLabels, r.label)
	}
	sort.Slice(table.columns, func(i, j int) bool {
		a, b := table.columns[i], table.columns[j]
		if a.Company != b.Company {
			return a.Company < b.Company
		}
		return a.Metric < b.Metric
	})
	return table
}

// Empty reports whether the table holds no cells.
func (p *PivotTable) Empty() bool {
	return len(p.rowLabels) == 0 || len(p.columns) == 0
}

// Rows returns the year labels in row order.
func (p *PivotTable) Rows() []string {
	out := make([]string, len(p.rowLabels))
	copy(out, p.rowLabels)
	return out
}

// Columns returns the value columns in column order.
func (p *PivotTable) Columns() []PivotColumn {
	out := make([]PivotColumn, len(p.columns))
	copy(out, p.columns)
	return out
}

// Cell returns the value at a row/column intersection. ok is false when the
// intersection has no observation.
func (p *PivotTable) Cell(rowLabel string, column PivotColumn) (float64, bool) {
	byColumn, ok := p.cells[rowLabel]
	if !ok {
		return 0, false
	}
	value, ok := byColumn[column]
	return value, ok
}
