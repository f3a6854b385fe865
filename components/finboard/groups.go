package finboard

import "github.com/ettle/strcase"

var groupOrder = []GroupKey{GroupLiquidity, GroupProfitability, GroupTurnover}

var metricGroups = map[GroupKey][]string{
	GroupLiquidity:     {"Current Ratio", "Quick Ratio"},
	GroupProfitability: {"Gross Profit Margin", "Net Profit Margin"},
	GroupTurnover:      {"Inventory Turnover", "Asset Turnover", "Trade Receivable Turnover"},
}

var groupTitles = map[GroupKey]string{
	GroupLiquidity:     "Liquidity Ratios",
	GroupProfitability: "Profitability Ratios",
	GroupTurnover:      "Turnover Ratios",
}

// kpiMetrics lists the metrics shown as cards. Trade Receivable Turnover is
// deliberately absent; it only appears in the turnover panel.
var kpiMetrics = []string{
	"Current Ratio",
	"Quick Ratio",
	"Gross Profit Margin",
	"Net Profit Margin",
	"Inventory Turnover",
	"Asset Turnover",
}

// Groups returns the metric group keys in display order.
func Groups() []GroupKey {
	out := make([]GroupKey, len(groupOrder))
	copy(out, groupOrder)
	return out
}

// KnownGroup reports whether key names one of the fixed metric groups.
func KnownGroup(key GroupKey) bool {
	_, ok := metricGroups[key]
	return ok
}

// GroupMetrics returns the metrics belonging to a group in display order.
// Unknown keys return nil, which downstream filters treat as match-nothing.
func GroupMetrics(key GroupKey) []string {
	metrics, ok := metricGroups[key]
	if !ok {
		return nil
	}
	out := make([]string, len(metrics))
	copy(out, metrics)
	return out
}

// GroupTitle returns the display title for a group, synthesizing one for
// unknown keys so callers always have something to render.
func GroupTitle(key GroupKey) string {
	if title, ok := groupTitles[key]; ok {
		return title
	}
	return strcase.ToPascal(string(key)) + " Ratios"
}

// PrimaryMetric returns the group's first metric, the one the sparkline
// tracks. ok is false for unknown groups.
func PrimaryMetric(key GroupKey) (string, bool) {
	metrics, ok := metricGroups[key]
	if !ok || len(metrics) == 0 {
		return "", false
	}
	return metrics[0], true
}

// KPIMetrics returns the card metrics in display order.
func KPIMetrics() []string {
	out := make([]string, len(kpiMetrics))
	copy(out, kpiMetrics)
	return out
}

// MetricSlug converts a metric display name into a stable identifier usable
// in element IDs and export sheet references.
func MetricSlug(metric string) string {
	return strcase.ToSnake(metric)
}

// SelectOption pairs a control value with its display label.
type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CompanyOptions returns the company selector choices in display order.
func CompanyOptions() []SelectOption {
	return []SelectOption{
		{Value: string(CompanyDixon), Label: "Dixon Technologies"},
		{Value: string(CompanyHoneywell), Label: "Honeywell Automation"},
		{Value: string(CompanyBoth), Label: "Both Companies"},
	}
}

// GroupOptions returns the metric group selector choices in display order.
func GroupOptions() []SelectOption {
	out := make([]SelectOption, 0, len(groupOrder))
	for _, key := range groupOrder {
		out = append(out, SelectOption{Value: string(key), Label: groupTitles[key]})
	}
	return out
}
