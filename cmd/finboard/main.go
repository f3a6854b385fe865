package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"github.com/joho/godotenv"

	finboard "github.com/AyushKumar-alt/Finance-Dashboard1/components/finboard"
	"github.com/AyushKumar-alt/Finance-Dashboard1/components/finboard/commands"
	"github.com/AyushKumar-alt/Finance-Dashboard1/components/finboard/gorouter"
	"github.com/AyushKumar-alt/Finance-Dashboard1/components/finboard/httpapi"
	"github.com/AyushKumar-alt/Finance-Dashboard1/components/finboard/queries"
)

type cli struct {
	Serve  serveCmd  `cmd:"" help:"Serve the comparison dashboard over HTTP."`
	Export exportCmd `cmd:"" help:"Write the analytical table as an Excel workbook."`
	Table  tableCmd  `cmd:"" help:"Print the pivoted data table as CSV."`
}

type serveCmd struct {
	Config  string `type:"path" help:"Path to a YAML config file."`
	Listen  string `help:"Listen address override (e.g. :8050)."`
	EnvFile string `name:"env-file" type:"path" help:"Optional .env file loaded before reading FINBOARD_* variables."`
}

type exportCmd struct {
	Out string `required:"" type:"path" help:"Destination .xlsx path."`
}

type tableCmd struct {
	Company string `default:"Both" help:"Company selection (Dixon, Honeywell, or Both)."`
	Group   string `default:"liquidity" help:"Metric group (liquidity, profitability, turnover)."`
	YearMin int    `default:"2021" help:"First fiscal year included."`
	YearMax int    `default:"2025" help:"Last fiscal year included."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Financial comparison dashboard for Dixon and Honeywell."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *serveCmd) Run(_ context.Context) error {
	if cmd.EnvFile != "" {
		if err := godotenv.Load(cmd.EnvFile); err != nil {
			return fmt.Errorf("finboard: load env file %s: %w", cmd.EnvFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := finboard.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return err
	}
	if cmd.Listen != "" {
		cfg.Listen = cmd.Listen
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	telemetry := finboard.NewSlogTelemetry(logger)
	hook := finboard.NewBroadcastHook()

	rendererOptions := []finboard.ChartRendererOption{
		finboard.WithChartTheme(cfg.Theme),
		finboard.WithChartCache(finboard.NewMarkupCache(cfg.CacheTTL.Std())),
	}
	if cfg.AssetsHost != "" {
		rendererOptions = append(rendererOptions, finboard.WithChartAssetsHost(cfg.AssetsHost))
	}

	service := finboard.NewService(finboard.Options{
		Charts:    finboard.NewChartRenderer(rendererOptions...),
		StateHook: hook,
		Telemetry: telemetry,
	})

	renderer, err := finboard.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("finboard: build template renderer: %w", err)
	}
	controller := finboard.NewController(finboard.ControllerOptions{
		Service:   service,
		Renderer:  renderer,
		BasePath:  cfg.BasePath,
		Telemetry: telemetry,
	})

	executor := &httpapi.CommandExecutor{
		ApplyQuerier: commands.NewApplyControlsCommand(service, telemetry),
		CardsQuerier: queries.NewCardsQuery(service),
		PanelQuerier: queries.NewPanelQuery(service),
	}
	exporter := finboard.NewWorkbookExporter(service.Dataset(),
		finboard.WithExportTelemetry(telemetry))

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: controller,
		API:        executor,
		Broadcast:  hook,
		Validator:  finboard.NewJSONSchemaValidator(),
		Exporter:   exporter,
		BasePath:   cfg.BasePath,
	}); err != nil {
		return fmt.Errorf("finboard: register routes: %w", err)
	}

	logger.Info("dashboard listening", "addr", cfg.Listen, "base_path", cfg.BasePath)
	if err := server.Serve(cfg.Listen); err != nil {
		return fmt.Errorf("finboard: server error: %w", err)
	}
	return nil
}

func (cmd *exportCmd) Run(ctx context.Context) error {
	exporter := finboard.NewWorkbookExporter(nil)
	if err := exporter.WriteFile(ctx, cmd.Out); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Wrote workbook to %s\n", cmd.Out)
	return nil
}

func (cmd *tableCmd) Run(_ context.Context) error {
	dataset := finboard.BuildDataset()
	state := finboard.ControlState{
		Company: finboard.Company(cmd.Company),
		Group:   finboard.GroupKey(cmd.Group),
		YearMin: cmd.YearMin,
		YearMax: cmd.YearMax,
	}
	text := finboard.BuildTableText(dataset, state)
	if text == "" {
		fmt.Fprintln(os.Stdout, "no rows match the given selection")
		return nil
	}
	fmt.Fprint(os.Stdout, text)
	return nil
}

func newLogger(cfg finboard.Config) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("finboard: unsupported log level %q", cfg.LogLevel)
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler), nil
}
