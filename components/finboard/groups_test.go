package finboard

import "testing"

func TestGroupsDisplayOrder(t *testing.T) {
	groups := Groups()
	want := []GroupKey{GroupLiquidity, GroupProfitability, GroupTurnover}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(groups))
	}
	for i, key := range want {
		if groups[i] != key {
			t.Fatalf("expected group %s at position %d, got %s", key, i, groups[i])
		}
	}
}

func TestGroupMetricsPerGroup(t *testing.T) {
	cases := map[GroupKey][]string{
		GroupLiquidity:     {"Current Ratio", "Quick Ratio"},
		GroupProfitability: {"Gross Profit Margin", "Net Profit Margin"},
		GroupTurnover:      {"Inventory Turnover", "Asset Turnover", "Trade Receivable Turnover"},
	}
	for key, want := range cases {
		metrics := GroupMetrics(key)
		if len(metrics) != len(want) {
			t.Fatalf("group %s: expected %d metrics, got %d", key, len(want), len(metrics))
		}
		for i, metric := range want {
			if metrics[i] != metric {
				t.Fatalf("group %s: expected %s at position %d, got %s", key, metric, i, metrics[i])
			}
		}
	}
	if GroupMetrics(GroupKey("efficiency")) != nil {
		t.Fatalf("expected nil metrics for unknown group")
	}
}

func TestGroupMetricsReturnsCopy(t *testing.T) {
	metrics := GroupMetrics(GroupLiquidity)
	metrics[0] = "mutated"
	if GroupMetrics(GroupLiquidity)[0] != "Current Ratio" {
		t.Fatalf("mutating the returned slice must not touch the group table")
	}
}

func TestKnownGroup(t *testing.T) {
	if !KnownGroup(GroupTurnover) {
		t.Fatalf("expected turnover to be known")
	}
	if KnownGroup(GroupKey("efficiency")) {
		t.Fatalf("expected efficiency to be unknown")
	}
}

func TestGroupTitleSynthesizesUnknownKeys(t *testing.T) {
	if title := GroupTitle(GroupProfitability); title != "Profitability Ratios" {
		t.Fatalf("unexpected title %q", title)
	}
	if title := GroupTitle(GroupKey("efficiency")); title != "Efficiency Ratios" {
		t.Fatalf("unexpected synthesized title %q", title)
	}
}

func TestPrimaryMetricTracksFirstOfGroup(t *testing.T) {
	cases := map[GroupKey]string{
		GroupLiquidity:     "Current Ratio",
		GroupProfitability: "Gross Profit Margin",
		GroupTurnover:      "Inventory Turnover",
	}
	for key, want := range cases {
		metric, ok := PrimaryMetric(key)
		if !ok || metric != want {
			t.Fatalf("group %s: expected %s, got %s (ok=%v)", key, want, metric, ok)
		}
	}
	if _, ok := PrimaryMetric(GroupKey("efficiency")); ok {
		t.Fatalf("expected no primary metric for unknown group")
	}
}

func TestKPIMetricsExcludeTradeReceivableTurnover(t *testing.T) {
	metrics := KPIMetrics()
	if len(metrics) != 6 {
		t.Fatalf("expected 6 card metrics, got %d", len(metrics))
	}
	for _, metric := range metrics {
		if metric == "Trade Receivable Turnover" {
			t.Fatalf("trade receivable turnover must not appear as a card")
		}
	}
}

func TestMetricSlug(t *testing.T) {
	cases := map[string]string{
		"Current Ratio":             "current_ratio",
		"Gross Profit Margin":       "gross_profit_margin",
		"Trade Receivable Turnover": "trade_receivable_turnover",
	}
	for metric, want := range cases {
		if slug := MetricSlug(metric); slug != want {
			t.Fatalf("expected slug %q for %q, got %q", want, metric, slug)
		}
	}
}

func TestSelectorOptions(t *testing.T) {
	companies := CompanyOptions()
	if len(companies) != 3 {
		t.Fatalf("expected 3 company options, got %d", len(companies))
	}
	if companies[0].Label != "Dixon Technologies" || companies[2].Value != string(CompanyBoth) {
		t.Fatalf("unexpected company options %#v", companies)
	}
	groups := GroupOptions()
	if len(groups) != 3 {
		t.Fatalf("expected 3 group options, got %d", len(groups))
	}
	if groups[0].Value != string(GroupLiquidity) || groups[0].Label != "Liquidity Ratios" {
		t.Fatalf("unexpected group options %#v", groups)
	}
}
