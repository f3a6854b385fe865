package finboard

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestApplyControlsReportsRegions(t *testing.T) {
	hook := &collectingHook{}
	service := NewService(Options{StateHook: hook})

	next := DefaultControlState(service.Dataset())
	next.Company = CompanyDixon
	result, err := service.ApplyControls(context.Background(), ApplyControlsRequest{State: next})
	if err != nil {
		t.Fatalf("ApplyControls returned error: %v", err)
	}
	if result.SessionID == "" {
		t.Fatalf("expected a minted session id")
	}
	if len(result.Regions) != 2 || result.Regions[0] != RegionCards || result.Regions[1] != RegionPanel {
		t.Fatalf("expected cards and panel, got %v", result.Regions)
	}
	if hook.events != 1 || hook.last.SessionID != result.SessionID {
		t.Fatalf("expected hook notified once for the session, got %d (%#v)", hook.events, hook.last)
	}
	if cards := service.Cards(context.Background(), result.SessionID); cards.Company != CompanyDixon {
		t.Fatalf("expected applied state to persist, got %s", cards.Company)
	}
}

func TestApplyControlsUnchangedStateSkipsHook(t *testing.T) {
	hook := &collectingHook{}
	service := NewService(Options{StateHook: hook})

	session := service.ResolveSession(context.Background(), "")
	result, err := service.ApplyControls(context.Background(), ApplyControlsRequest{
		SessionID: session.ID(),
		State:     session.State(),
	})
	if err != nil {
		t.Fatalf("ApplyControls returned error: %v", err)
	}
	if len(result.Regions) != 0 {
		t.Fatalf("expected no affected regions, got %v", result.Regions)
	}
	if hook.events != 0 {
		t.Fatalf("expected hook untouched, got %d events", hook.events)
	}
}

func TestApplyControlsRejectsMalformedState(t *testing.T) {
	hook := &collectingHook{}
	service := NewService(Options{StateHook: hook})

	state := DefaultControlState(service.Dataset())
	state.Company = ""
	_, err := service.ApplyControls(context.Background(), ApplyControlsRequest{State: state})
	if err == nil {
		t.Fatalf("expected validation error for empty company")
	}
	if hook.events != 0 {
		t.Fatalf("expected hook untouched on validation failure")
	}
}

func TestApplyControlsAllowsUnknownSelections(t *testing.T) {
	service := NewService(Options{})

	state := ControlState{Company: Company("Acme"), Group: GroupKey("efficiency"), YearMin: 2021, YearMax: 2025}
	result, err := service.ApplyControls(context.Background(), ApplyControlsRequest{State: state})
	if err != nil {
		t.Fatalf("unknown selections must apply cleanly, got %v", err)
	}

	panel, err := service.Panel(context.Background(), result.SessionID)
	if err != nil {
		t.Fatalf("Panel returned error: %v", err)
	}
	if panel.TableText != "" {
		t.Fatalf("expected empty table for unmatched selections, got %q", panel.TableText)
	}
}

func TestApplyControlsPropagatesHookError(t *testing.T) {
	wantErr := errors.New("broadcast down")
	service := NewService(Options{StateHook: failingHook{err: wantErr}})

	next := DefaultControlState(service.Dataset())
	next.Group = GroupTurnover
	_, err := service.ApplyControls(context.Background(), ApplyControlsRequest{State: next})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected hook error, got %v", err)
	}
}

func TestCardsUsesSessionState(t *testing.T) {
	service := NewService(Options{})

	next := DefaultControlState(service.Dataset())
	next.Company = CompanyHoneywell
	result, err := service.ApplyControls(context.Background(), ApplyControlsRequest{State: next})
	if err != nil {
		t.Fatalf("ApplyControls returned error: %v", err)
	}

	cards := service.Cards(context.Background(), result.SessionID)
	if len(cards.Cards) != 6 {
		t.Fatalf("expected 6 cards, got %d", len(cards.Cards))
	}
	for _, card := range cards.Cards {
		if len(card.Values) != 1 || card.Values[0].Company != CompanyHoneywell {
			t.Fatalf("expected Honeywell-only values, got %#v", card)
		}
	}
}

func TestPanelRendersAllRegions(t *testing.T) {
	telemetry := &testTelemetry{}
	service := NewService(Options{Telemetry: telemetry})

	panel, err := service.Panel(context.Background(), "")
	if err != nil {
		t.Fatalf("Panel returned error: %v", err)
	}
	if panel.ChartHTML == "" || panel.SparkHTML == "" {
		t.Fatalf("expected rendered chart markup")
	}
	if !strings.Contains(panel.TableText, "YearLabel") {
		t.Fatalf("expected pivoted table header, got %q", panel.TableText)
	}
	if panel.State != DefaultControlState(service.Dataset()) {
		t.Fatalf("expected default selections, got %#v", panel.State)
	}
	if !telemetry.saw("finboard.panel.resolve") {
		t.Fatalf("expected panel telemetry, got %v", telemetry.events)
	}
}

func TestResolveSessionRecoversUnknownIDs(t *testing.T) {
	service := NewService(Options{})
	session := service.ResolveSession(context.Background(), "long-gone")
	if session == nil || session.ID() == "" || session.ID() == "long-gone" {
		t.Fatalf("expected a fresh session, got %#v", session)
	}
	if session.State() != DefaultControlState(service.Dataset()) {
		t.Fatalf("expected default selections, got %#v", session.State())
	}
}

func TestNewServiceDefaults(t *testing.T) {
	service := NewService(Options{})
	if service.Dataset() == nil || service.Dataset().Len() != 70 {
		t.Fatalf("expected built-in dataset")
	}
	if err := service.ValidatePayload(validControlsPayload()); err != nil {
		t.Fatalf("expected default validator to accept controls payload, got %v", err)
	}
}

type collectingHook struct {
	events int
	last   StateEvent
}

func (h *collectingHook) StateApplied(_ context.Context, event StateEvent) error {
	h.events++
	h.last = event
	return nil
}

var _ StateHook = (*collectingHook)(nil)

type failingHook struct {
	err error
}

func (h failingHook) StateApplied(context.Context, StateEvent) error { return h.err }

type testTelemetry struct {
	events []string
}

func (t *testTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	t.events = append(t.events, event)
}

func (t *testTelemetry) saw(event string) bool {
	for _, name := range t.events {
		if name == event {
			return true
		}
	}
	return false
}
