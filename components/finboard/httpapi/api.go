package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	finboard "github.com/AyushKumar-alt/Finance-Dashboard1/components/finboard"
	"github.com/AyushKumar-alt/Finance-Dashboard1/components/finboard/commands"
	"github.com/AyushKumar-alt/Finance-Dashboard1/components/finboard/queries"
	gocommand "github.com/goliatone/go-command"
)

// SessionHeader carries the caller's session id on API requests. A session
// query parameter works as a fallback.
const SessionHeader = "X-Finboard-Session"

// Executor is the command/query surface transports invoke.
type Executor interface {
	ApplyControls(ctx context.Context, input commands.ApplyControlsInput) (finboard.ApplyControlsResult, error)
	Cards(ctx context.Context, req queries.CardsRequest) (finboard.CardsView, error)
	Panel(ctx context.Context, req queries.PanelRequest) (finboard.PanelView, error)
}

// CommandExecutor implements Executor over shared go-command handlers.
type CommandExecutor struct {
	ApplyQuerier gocommand.Querier[commands.ApplyControlsInput, finboard.ApplyControlsResult]
	CardsQuerier gocommand.Querier[queries.CardsRequest, finboard.CardsView]
	PanelQuerier gocommand.Querier[queries.PanelRequest, finboard.PanelView]
}

var _ Executor = (*CommandExecutor)(nil)

// ApplyControls submits new control selections.
func (e *CommandExecutor) ApplyControls(ctx context.Context, input commands.ApplyControlsInput) (finboard.ApplyControlsResult, error) {
	if e.ApplyQuerier == nil {
		return finboard.ApplyControlsResult{}, errors.New("httpapi: apply querier not configured")
	}
	return e.ApplyQuerier.Query(ctx, input)
}

// Cards computes the card region.
func (e *CommandExecutor) Cards(ctx context.Context, req queries.CardsRequest) (finboard.CardsView, error) {
	if e.CardsQuerier == nil {
		return finboard.CardsView{}, errors.New("httpapi: cards querier not configured")
	}
	return e.CardsQuerier.Query(ctx, req)
}

// Panel renders the panel region.
func (e *CommandExecutor) Panel(ctx context.Context, req queries.PanelRequest) (finboard.PanelView, error) {
	if e.PanelQuerier == nil {
		return finboard.PanelView{}, errors.New("httpapi: panel querier not configured")
	}
	return e.PanelQuerier.Query(ctx, req)
}

// Handlers exposes HTTP endpoints backed by shared commands and queries for
// hosts that mount plain net/http routes.
type Handlers struct {
	Apply     gocommand.Querier[commands.ApplyControlsInput, finboard.ApplyControlsResult]
	Cards     gocommand.Querier[queries.CardsRequest, finboard.CardsView]
	Panel     gocommand.Querier[queries.PanelRequest, finboard.PanelView]
	Validator finboard.ControlValidator
	Exporter  *finboard.WorkbookExporter
	Broadcast *finboard.BroadcastHook
}

// HandleApplyControls validates and applies a controls payload, replying
// with the authoritative session state.
func (h *Handlers) HandleApplyControls(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload := map[string]any{}
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.Validator != nil {
		if err := h.Validator.Validate(payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	var input commands.ApplyControlsInput
	if err := json.Unmarshal(body, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input.SessionID = RequestSessionID(r)
	result, err := h.Apply.Query(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleCards replies with the card region for the caller's session.
func (h *Handlers) HandleCards(w http.ResponseWriter, r *http.Request) {
	view, err := h.Cards.Query(r.Context(), queries.CardsRequest{SessionID: RequestSessionID(r)})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandlePanel replies with the panel region for the caller's session.
func (h *Handlers) HandlePanel(w http.ResponseWriter, r *http.Request) {
	view, err := h.Panel.Query(r.Context(), queries.PanelRequest{SessionID: RequestSessionID(r)})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleTable replies with the pivoted data table as CSV text for the
// caller's session.
func (h *Handlers) HandleTable(w http.ResponseWriter, r *http.Request) {
	view, err := h.Panel.Query(r.Context(), queries.PanelRequest{SessionID: RequestSessionID(r)})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	_, _ = io.WriteString(w, view.TableText)
}

// HandleExport streams the analytical table as an Excel workbook.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	if h.Exporter == nil {
		http.Error(w, "export is not configured", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="finboard.xlsx"`)
	if err := h.Exporter.Write(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleEvents streams applied control changes as Server-Sent Events.
func (h *Handlers) HandleEvents(w http.ResponseWriter, r *http.Request) {
	if h.Broadcast == nil {
		http.Error(w, "events are not configured", http.StatusNotFound)
		return
	}
	h.Broadcast.ServeSSE(w, r)
}

// HandleSocket upgrades the request to a WebSocket streaming applied control
// changes as JSON.
func (h *Handlers) HandleSocket(w http.ResponseWriter, r *http.Request) {
	if h.Broadcast == nil {
		http.Error(w, "events are not configured", http.StatusNotFound)
		return
	}
	h.Broadcast.ServeWebSocket(w, r)
}

// RequestSessionID extracts the session id from the request header or the
// session query parameter.
func RequestSessionID(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	return r.URL.Query().Get("session")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
