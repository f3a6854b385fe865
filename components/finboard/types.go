package finboard

import "context"

// Company identifies one of the tracked companies. CompanyBoth is a
// selector-only value and never appears on a Record.
type Company string

const (
	CompanyDixon     Company = "Dixon"
	CompanyHoneywell Company = "Honeywell"
	CompanyBoth      Company = "Both"
)

// GroupKey names one of the fixed metric groups.
type GroupKey string

const (
	GroupLiquidity     GroupKey = "liquidity"
	GroupProfitability GroupKey = "profitability"
	GroupTurnover      GroupKey = "turnover"
)

// Record is one observation of the tidy table: a single metric value for a
// company in one fiscal year.
type Record struct {
	Company   Company
	Metric    string
	Value     float64
	YearLabel string
	Year      int
}

// SeriesPoint is one (year label, value) step of a metric series.
type SeriesPoint struct {
	YearLabel string
	Value     float64
}

// ControlState carries the three filter selections driving the dashboard.
type ControlState struct {
	Company Company  `json:"company"`
	Group   GroupKey `json:"metric_group"`
	YearMin int      `json:"year_min"`
	YearMax int      `json:"year_max"`
}

// Region identifies an independently refreshed area of the page.
type Region string

const (
	// RegionCards covers the KPI summary cards; it depends on the company
	// selection only.
	RegionCards Region = "cards"
	// RegionPanel covers the main chart, the sparkline, and the data table;
	// it depends on company, metric group, and year range.
	RegionPanel Region = "panel"
)

// StateEvent describes a control change that transports might care about.
type StateEvent struct {
	SessionID string       `json:"session_id"`
	Regions   []Region     `json:"regions"`
	State     ControlState `json:"state"`
}

// StateHook notifies transports (WebSocket/SSE) about applied control changes.
type StateHook interface {
	StateApplied(ctx context.Context, event StateEvent) error
}

// KPIValue is a single company's formatted latest value on a card.
type KPIValue struct {
	Company Company `json:"company"`
	Display string  `json:"display"`
}

// KPICard summarizes one metric's most recent value. Values holds one entry
// for a single-company selection and two (Dixon, Honeywell) for Both.
type KPICard struct {
	Metric string     `json:"metric"`
	Slug   string     `json:"slug"`
	Values []KPIValue `json:"values"`
}

// CardsView is the view model for the KPI card region.
type CardsView struct {
	Company Company   `json:"company"`
	Cards   []KPICard `json:"cards"`
}

// ChartPoint is one bar/marker of a rendered series.
type ChartPoint struct {
	Label   string
	Value   float64
	Display string
}

// ChartSeries is a named sequence of points handed to the chart renderer.
type ChartSeries struct {
	Name   string
	Points []ChartPoint
}

// ChartView carries everything the chart renderer needs for one figure.
type ChartView struct {
	Title  string
	XTitle string
	YTitle string
	XAxis  []string
	Series []ChartSeries
}

// PanelView is the view model for the chart/sparkline/table region. Chart
// markup is pre-rendered HTML from the chart renderer.
type PanelView struct {
	State     ControlState `json:"state"`
	ChartHTML string       `json:"chart_html"`
	SparkHTML string       `json:"spark_html"`
	TableText string       `json:"table_text"`
}
