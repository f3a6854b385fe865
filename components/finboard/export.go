package finboard

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	pivotSheet  = "Pivot"
	latestSheet = "Latest"
)

// WorkbookExporter writes the analytical table as an Excel workbook: a Pivot
// sheet mirroring the dashboard's data table at full precision, and a Latest
// sheet with the most recent value per company and metric.
type WorkbookExporter struct {
	dataset   *Dataset
	telemetry Telemetry
}

// WorkbookExporterOption customizes a WorkbookExporter.
type WorkbookExporterOption func(*WorkbookExporter)

// WithExportTelemetry records export events through t.
func WithExportTelemetry(t Telemetry) WorkbookExporterOption {
	return func(e *WorkbookExporter) { e.telemetry = t }
}

// NewWorkbookExporter builds an exporter over dataset; nil means the
// built-in table.
func NewWorkbookExporter(dataset *Dataset, options ...WorkbookExporterOption) *WorkbookExporter {
	e := &WorkbookExporter{dataset: dataset}
	if e.dataset == nil {
		e.dataset = BuildDataset()
	}
	for _, option := range options {
		option(e)
	}
	e.telemetry = normalizeTelemetry(e.telemetry)
	return e
}

// Write streams the workbook to w.
func (e *WorkbookExporter) Write(ctx context.Context, w io.Writer) error {
	f, err := e.build()
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("finboard: write workbook: %w", err)
	}
	e.telemetry.Record(ctx, "finboard.export.write", map[string]any{
		"rows": e.dataset.Len(),
	})
	return nil
}

// WriteFile saves the workbook at path.
func (e *WorkbookExporter) WriteFile(ctx context.Context, path string) error {
	f, err := e.build()
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("finboard: save workbook %s: %w", path, err)
	}
	e.telemetry.Record(ctx, "finboard.export.write", map[string]any{
		"path": path,
		"rows": e.dataset.Len(),
	})
	return nil
}

func (e *WorkbookExporter) build() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", pivotSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("finboard: prepare pivot sheet: %w", err)
	}
	if err := e.writePivot(f); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(latestSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("finboard: prepare latest sheet: %w", err)
	}
	if err := e.writeLatest(f); err != nil {
		f.Close()
		return nil, err
	}
	if index, err := f.GetSheetIndex(pivotSheet); err == nil {
		f.SetActiveSheet(index)
	}
	return f, nil
}

func (e *WorkbookExporter) writePivot(f *excelize.File) error {
	pivot := Pivot(e.dataset.Records())
	if err := setCell(f, pivotSheet, 1, 1, "YearLabel"); err != nil {
		return err
	}
	columns := pivot.Columns()
	for i, column := range columns {
		header := fmt.Sprintf("%s — %s", column.Company, column.Metric)
		if err := setCell(f, pivotSheet, i+2, 1, header); err != nil {
			return err
		}
	}
	for rowIdx, rowLabel := range pivot.Rows() {
		row := rowIdx + 2
		if err := setCell(f, pivotSheet, 1, row, rowLabel); err != nil {
			return err
		}
		for colIdx, column := range columns {
			value, ok := pivot.Cell(rowLabel, column)
			if !ok {
				continue
			}
			if err := setCell(f, pivotSheet, colIdx+2, row, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *WorkbookExporter) writeLatest(f *excelize.File) error {
	headers := []any{"Metric", string(CompanyDixon), string(CompanyHoneywell)}
	for i, header := range headers {
		if err := setCell(f, latestSheet, i+1, 1, header); err != nil {
			return err
		}
	}
	row := 2
	for _, group := range Groups() {
		for _, metric := range GroupMetrics(group) {
			if err := setCell(f, latestSheet, 1, row, metric); err != nil {
				return err
			}
			for i, company := range []Company{CompanyDixon, CompanyHoneywell} {
				value, _, ok := e.dataset.LatestValue(company, metric)
				if !ok {
					continue
				}
				if err := setCell(f, latestSheet, i+2, row, value); err != nil {
					return err
				}
			}
			row++
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("finboard: cell coordinates (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("finboard: set cell %s!%s: %w", sheet, cell, err)
	}
	return nil
}
