package finboard

import (
	"bytes"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	comparisonChartHeight = "560px"
	sparklineHeight       = "240px"

	// DefaultEChartsAssetsHost serves the ECharts runtime the rendered
	// markup loads in the browser.
	DefaultEChartsAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

	// envEChartsCDN overrides the default assets host (e.g., to point at a
	// self-hosted bucket).
	envEChartsCDN = "FINBOARD_ECHARTS_CDN"

	defaultMarkupTTL = 5 * time.Minute
)

// EChartsAssetsHost returns the assets host, respecting FINBOARD_ECHARTS_CDN
// when set.
func EChartsAssetsHost() string {
	if host := strings.TrimSpace(os.Getenv(envEChartsCDN)); host != "" {
		return ensureTrailingSlash(host)
	}
	return DefaultEChartsAssetsHost
}

func ensureTrailingSlash(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}

// ChartRenderer turns chart view models into embeddable ECharts markup.
type ChartRenderer struct {
	theme      string
	assetsHost string
	cache      RenderCache
}

// ChartRendererOption customizes a ChartRenderer.
type ChartRendererOption func(*ChartRenderer)

// WithChartTheme selects the ECharts theme applied to every figure.
func WithChartTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		if theme != "" {
			r.theme = theme
		}
	}
}

// WithChartAssetsHost overrides where the rendered markup loads the ECharts
// runtime from.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		if host != "" {
			r.assetsHost = ensureTrailingSlash(host)
		}
	}
}

// WithChartCache installs a markup cache. Pass nil to disable caching.
func WithChartCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// NewChartRenderer builds a renderer with the Westeros theme, the default
// assets host, and a short-lived markup cache.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		theme:      types.ThemeWesteros,
		assetsHost: EChartsAssetsHost(),
		cache:      NewMarkupCache(defaultMarkupTTL),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// GroupedBar renders the comparison figure as a grouped bar chart.
func (r *ChartRenderer) GroupedBar(view ChartView) (string, error) {
	return r.memoized("bar", view, func() (string, error) {
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalOptions(view, comparisonChartHeight, true)...)
		bar.SetXAxis(view.XAxis)
		for _, series := range view.Series {
			bar.AddSeries(series.Name, barData(view.XAxis, series.Points))
		}
		bar.SetSeriesOptions(charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "top",
		}))
		return renderChart(bar)
	})
}

// Sparkline renders the mini trend as a compact line chart with markers.
func (r *ChartRenderer) Sparkline(view ChartView) (string, error) {
	return r.memoized("spark", view, func() (string, error) {
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalOptions(view, sparklineHeight, false)...)
		line.SetXAxis(view.XAxis)
		for _, series := range view.Series {
			line.AddSeries(series.Name, lineData(view.XAxis, series.Points))
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{
			ShowSymbol: opts.Bool(true),
		}))
		return renderChart(line)
	})
}

func (r *ChartRenderer) memoized(kind string, view ChartView, render func() (string, error)) (string, error) {
	if r.cache == nil {
		return render()
	}
	return r.cache.GetOrRender(markupKey(kind, r.theme, view), render)
}

func (r *ChartRenderer) globalOptions(view ChartView, height string, toolbox bool) []charts.GlobalOpts {
	initialization := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: height,
	}
	if r.assetsHost != "" {
		initialization.AssetsHost = r.assetsHost
	}

	global := []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: view.Title}),
		charts.WithInitializationOpts(initialization),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
	if view.XTitle != "" {
		global = append(global, charts.WithXAxisOpts(opts.XAxis{Name: view.XTitle}))
	}
	if view.YTitle != "" {
		global = append(global, charts.WithYAxisOpts(opts.YAxis{Name: view.YTitle}))
	}
	if toolbox {
		global = append(global, charts.WithToolboxOpts(opts.Toolbox{Show: opts.Bool(true)}))
	}
	return global
}

// barData aligns series points to the shared x axis. Years a series has no
// observation for get a nil value, which ECharts renders as a gap.
func barData(axis []string, points []ChartPoint) []opts.BarData {
	byLabel := make(map[string]ChartPoint, len(points))
	for _, point := range points {
		byLabel[point.Label] = point
	}
	data := make([]opts.BarData, len(axis))
	for i, label := range axis {
		point, ok := byLabel[label]
		if !ok {
			data[i] = opts.BarData{Name: label}
			continue
		}
		data[i] = opts.BarData{Name: label, Value: point.Value}
	}
	return data
}

func lineData(axis []string, points []ChartPoint) []opts.LineData {
	byLabel := make(map[string]ChartPoint, len(points))
	for _, point := range points {
		byLabel[point.Label] = point
	}
	data := make([]opts.LineData, len(axis))
	for i, label := range axis {
		point, ok := byLabel[label]
		if !ok {
			data[i] = opts.LineData{Name: label}
			continue
		}
		data[i] = opts.LineData{Name: label, Value: point.Value}
	}
	return data
}

func renderChart(renderable interface{ Render(w io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
