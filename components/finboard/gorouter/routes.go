package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	finboard "github.com/AyushKumar-alt/Finance-Dashboard1/components/finboard"
	"github.com/AyushKumar-alt/Finance-Dashboard1/components/finboard/commands"
	"github.com/AyushKumar-alt/Finance-Dashboard1/components/finboard/httpapi"
	"github.com/AyushKumar-alt/Finance-Dashboard1/components/finboard/queries"
)

// SessionResolver extracts the caller's session id from a router context.
type SessionResolver func(router.Context) string

// Config wires go-router with the dashboard controller, API, and hooks.
type Config[T any] struct {
	Router          router.Router[T]
	Controller      *finboard.Controller
	API             httpapi.Executor
	Broadcast       *finboard.BroadcastHook
	Validator       finboard.ControlValidator
	Exporter        *finboard.WorkbookExporter
	SessionResolver SessionResolver
	BasePath        string
	Routes          RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML      string
	Cards     string
	Panel     string
	Controls  string
	Table     string
	Export    string
	WebSocket string
}

// Register mounts dashboard routes (HTML, JSON, WebSocket) on a go-router
// router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/"
	}
	sessionResolver := cfg.SessionResolver
	if sessionResolver == nil {
		sessionResolver = defaultSessionResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := cfg.Controller.RenderPage(ctx.Context(), sessionResolver(ctx), &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, cfg.Validator, sessionResolver, routes)
	}

	if cfg.Exporter != nil {
		registerExport(group, cfg.Exporter, routes.Export)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, validator finboard.ControlValidator, resolver SessionResolver, routes RouteConfig) {
	r.Get(routes.Cards, router.WrapHandler(func(ctx router.Context) error {
		view, err := api.Cards(ctx.Context(), queries.CardsRequest{SessionID: resolver(ctx)})
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, view)
	}))

	r.Get(routes.Panel, router.WrapHandler(func(ctx router.Context) error {
		view, err := api.Panel(ctx.Context(), queries.PanelRequest{SessionID: resolver(ctx)})
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, view)
	}))

	r.Get(routes.Table, router.WrapHandler(func(ctx router.Context) error {
		view, err := api.Panel(ctx.Context(), queries.PanelRequest{SessionID: resolver(ctx)})
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/csv; charset=utf-8")
		return ctx.Send([]byte(view.TableText))
	}))

	r.Post(routes.Controls, router.WrapHandler(func(ctx router.Context) error {
		body := ctx.Body()
		payload := map[string]any{}
		if err := json.Unmarshal(body, &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if validator != nil {
			if err := validator.Validate(payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
		}
		var input commands.ApplyControlsInput
		if err := json.Unmarshal(body, &input); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input.SessionID = resolver(ctx)
		result, err := api.ApplyControls(ctx.Context(), input)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, result)
	}))
}

func registerExport[T any](r router.Router[T], exporter *finboard.WorkbookExporter, path string) {
	r.Get(path, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := exporter.Write(ctx.Context(), &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		ctx.SetHeader("Content-Disposition", `attachment; filename="finboard.xlsx"`)
		return ctx.Send(buf.Bytes())
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *finboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultSessionResolver(ctx router.Context) string {
	if id := strings.TrimSpace(ctx.Header(httpapi.SessionHeader)); id != "" {
		return id
	}
	if id := strings.TrimSpace(ctx.Query("session")); id != "" {
		return id
	}
	if id, ok := ctx.Locals("finboard_session").(string); ok {
		return strings.TrimSpace(id)
	}
	return ""
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/"
	}
	if routes.Cards == "" {
		routes.Cards = "/api/cards"
	}
	if routes.Panel == "" {
		routes.Panel = "/api/panel"
	}
	if routes.Controls == "" {
		routes.Controls = "/api/controls"
	}
	if routes.Table == "" {
		routes.Table = "/api/table"
	}
	if routes.Export == "" {
		routes.Export = "/api/export"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
