package finboard

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

type stubPageService struct {
	dataset *Dataset
	session *Session
	cards   CardsView
	panel   PanelView
}

func (s *stubPageService) Dataset() *Dataset { return s.dataset }

func (s *stubPageService) ResolveSession(context.Context, string) *Session { return s.session }

func (s *stubPageService) Cards(context.Context, string) CardsView { return s.cards }

func (s *stubPageService) Panel(context.Context, string) (PanelView, error) { return s.panel, nil }

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<html></html>"))
	}
	return "<html></html>", r.err
}

func TestControllerRenderPage(t *testing.T) {
	dataset := BuildDataset()
	service := &stubPageService{
		dataset: dataset,
		session: &Session{id: "sess-1", state: DefaultControlState(dataset)},
		cards:   BuildKPICards(dataset, DefaultControlState(dataset)),
		panel:   PanelView{TableText: "YearLabel\n"},
	}
	renderer := &stubRenderer{}
	controller := NewController(ControllerOptions{
		Service:  service,
		Renderer: renderer,
		BasePath: "/finance",
	})

	var buf bytes.Buffer
	if err := controller.RenderPage(context.Background(), "sess-1", &buf); err != nil {
		t.Fatalf("RenderPage returned error: %v", err)
	}
	if renderer.lastTemplate != "dashboard.html" {
		t.Fatalf("expected dashboard template to render, got %s", renderer.lastTemplate)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected rendered output")
	}
	if renderer.lastPayload["title"] != "Financial Dashboard — Dixon vs Honeywell" {
		t.Fatalf("unexpected title %v", renderer.lastPayload["title"])
	}
	if renderer.lastPayload["session_id"] != "sess-1" {
		t.Fatalf("expected session id in payload, got %v", renderer.lastPayload["session_id"])
	}
	if renderer.lastPayload["base_path"] != "/finance" {
		t.Fatalf("expected base path in payload, got %v", renderer.lastPayload["base_path"])
	}
	state, ok := renderer.lastPayload["state"].(map[string]any)
	if !ok || state["company"] != "Both" || state["year_max"] != 2025 {
		t.Fatalf("expected flattened state, got %#v", renderer.lastPayload["state"])
	}
	marks, ok := renderer.lastPayload["year_marks"].([]YearMark)
	if !ok || len(marks) != 5 || marks[0].Label != "Mar-21" {
		t.Fatalf("expected year marks, got %#v", renderer.lastPayload["year_marks"])
	}
	if _, ok := renderer.lastPayload["company_options"].([]SelectOption); !ok {
		t.Fatalf("expected company options in payload")
	}
}

func TestControllerRequiresCollaborators(t *testing.T) {
	var buf bytes.Buffer
	controller := NewController(ControllerOptions{Renderer: &stubRenderer{}})
	if err := controller.RenderPage(context.Background(), "", &buf); err == nil {
		t.Fatalf("expected error without a service")
	}
	controller = NewController(ControllerOptions{Service: &stubPageService{session: &Session{id: "s"}}})
	if err := controller.RenderPage(context.Background(), "", &buf); err == nil {
		t.Fatalf("expected error without a renderer")
	}
}

func TestControllerRendersEmbeddedTemplates(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		t.Fatalf("NewTemplateRenderer returned error: %v", err)
	}
	controller := NewController(ControllerOptions{
		Service:  NewService(Options{}),
		Renderer: renderer,
	})

	var buf bytes.Buffer
	if err := controller.RenderPage(context.Background(), "", &buf); err != nil {
		t.Fatalf("RenderPage returned error: %v", err)
	}
	page := buf.String()
	for _, fragment := range []string{
		"Financial Dashboard — Dixon vs Honeywell",
		`id="card-current_ratio"`,
		"Mini-trend &amp; data",
		"Mar-21 → Mar-25",
	} {
		if !strings.Contains(page, fragment) {
			t.Fatalf("expected page to contain %q", fragment)
		}
	}
}
