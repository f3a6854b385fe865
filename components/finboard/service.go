package finboard

import (
	"context"
	"encoding/json"
	"fmt"
)

// Options configures the dashboard Service. Collaborators left nil are
// replaced with working defaults so a zero-config host still boots.
type Options struct {
	Dataset   *Dataset
	Charts    *ChartRenderer
	Sessions  *SessionStore
	Validator ControlValidator
	StateHook StateHook
	Telemetry Telemetry
}

// Service computes dashboard views and coordinates per-session control
// state. The card and panel regions are computed independently: cards read
// only the company selection, the panel reads all three controls.
type Service struct {
	opts Options
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Dataset == nil {
		opts.Dataset = BuildDataset()
	}
	if opts.Charts == nil {
		opts.Charts = NewChartRenderer()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.StateHook == nil {
		opts.StateHook = noopStateHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Sessions == nil {
		dataset := opts.Dataset
		opts.Sessions = NewSessionStore(func() ControlState {
			return DefaultControlState(dataset)
		})
	}
	return &Service{opts: opts}
}

// Dataset exposes the analytical table backing every view.
func (s *Service) Dataset() *Dataset { return s.opts.Dataset }

// ResolveSession returns the session for id, minting a fresh one when id is
// empty or unknown. A stale id after a restart therefore recovers instead of
// failing.
func (s *Service) ResolveSession(ctx context.Context, id string) *Session {
	if id != "" {
		if session, ok := s.opts.Sessions.Get(id); ok {
			return session
		}
	}
	session := s.opts.Sessions.New()
	s.recordTelemetry(ctx, "finboard.session.start", map[string]any{
		"session_id": session.ID(),
	})
	return session
}

// ApplyControlsRequest carries a session's new control selections.
type ApplyControlsRequest struct {
	SessionID string
	State     ControlState
}

// ApplyControlsResult reports the authoritative session id, the applied
// state, and the page regions the change touches. Empty Regions means the
// selections did not change.
type ApplyControlsResult struct {
	SessionID string       `json:"session_id"`
	State     ControlState `json:"state"`
	Regions   []Region     `json:"regions"`
}

// ApplyControls validates and stores new selections for a session, then
// notifies the state hook when anything changed.
func (s *Service) ApplyControls(ctx context.Context, req ApplyControlsRequest) (ApplyControlsResult, error) {
	if err := s.validateState(req.State); err != nil {
		return ApplyControlsResult{}, err
	}
	session := s.ResolveSession(ctx, req.SessionID)
	regions := session.Apply(req.State)
	if len(regions) > 0 {
		event := StateEvent{SessionID: session.ID(), Regions: regions, State: req.State}
		if err := s.opts.StateHook.StateApplied(ctx, event); err != nil {
			return ApplyControlsResult{}, err
		}
	}
	s.recordTelemetry(ctx, "finboard.controls.apply", map[string]any{
		"session_id":   session.ID(),
		"company":      string(req.State.Company),
		"metric_group": string(req.State.Group),
		"year_min":     req.State.YearMin,
		"year_max":     req.State.YearMax,
	})
	return ApplyControlsResult{
		SessionID: session.ID(),
		State:     req.State,
		Regions:   regions,
	}, nil
}

// ValidatePayload checks a raw controls payload without applying it.
func (s *Service) ValidatePayload(payload map[string]any) error {
	return s.opts.Validator.Validate(payload)
}

// Cards computes the KPI card region for a session's current selections.
func (s *Service) Cards(ctx context.Context, sessionID string) CardsView {
	session := s.ResolveSession(ctx, sessionID)
	view := BuildKPICards(s.opts.Dataset, session.State())
	s.recordTelemetry(ctx, "finboard.cards.resolve", map[string]any{
		"session_id": session.ID(),
		"company":    string(view.Company),
	})
	return view
}

// CardsForState computes the card region for explicit selections.
func (s *Service) CardsForState(ctx context.Context, state ControlState) CardsView {
	return BuildKPICards(s.opts.Dataset, state)
}

// Panel renders the chart, sparkline, and table for a session's current
// selections.
func (s *Service) Panel(ctx context.Context, sessionID string) (PanelView, error) {
	session := s.ResolveSession(ctx, sessionID)
	state := session.State()
	view, err := s.PanelForState(ctx, state)
	if err != nil {
		return PanelView{}, err
	}
	s.recordTelemetry(ctx, "finboard.panel.resolve", map[string]any{
		"session_id":   session.ID(),
		"company":      string(state.Company),
		"metric_group": string(state.Group),
		"year_min":     state.YearMin,
		"year_max":     state.YearMax,
	})
	return view, nil
}

// PanelForState renders the chart, sparkline, and table for explicit
// selections.
func (s *Service) PanelForState(ctx context.Context, state ControlState) (PanelView, error) {
	chartHTML, err := s.opts.Charts.GroupedBar(BuildMainChart(s.opts.Dataset, state))
	if err != nil {
		return PanelView{}, fmt.Errorf("finboard: render comparison chart: %w", err)
	}
	sparkHTML, err := s.opts.Charts.Sparkline(BuildSparkline(s.opts.Dataset, state))
	if err != nil {
		return PanelView{}, fmt.Errorf("finboard: render sparkline: %w", err)
	}
	return PanelView{
		State:     state,
		ChartHTML: chartHTML,
		SparkHTML: sparkHTML,
		TableText: BuildTableText(s.opts.Dataset, state),
	}, nil
}

func (s *Service) validateState(state ControlState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("finboard: marshal control state: %w", err)
	}
	payload := map[string]any{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("finboard: normalize control state: %w", err)
	}
	return s.opts.Validator.Validate(payload)
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

type noopStateHook struct{}

func (noopStateHook) StateApplied(context.Context, StateEvent) error { return nil }
