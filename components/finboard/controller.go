package finboard

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// pageTitle is the heading the dashboard page renders.
const pageTitle = "Financial Dashboard — Dixon vs Honeywell"

// PageService is the service surface the page controller needs.
type PageService interface {
	Dataset() *Dataset
	ResolveSession(ctx context.Context, id string) *Session
	Cards(ctx context.Context, sessionID string) CardsView
	Panel(ctx context.Context, sessionID string) (PanelView, error)
}

// ControllerOptions wires the page controller's collaborators.
type ControllerOptions struct {
	Service  PageService
	Renderer Renderer
	// Template names the page template; defaults to dashboard.html.
	Template string
	// BasePath is the mount point the page links its API calls under;
	// defaults to /.
	BasePath  string
	Telemetry Telemetry
}

// Controller renders the dashboard page for a session.
type Controller struct {
	opts ControllerOptions
}

// NewController wires the service and renderer into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = "dashboard.html"
	}
	if opts.BasePath == "" {
		opts.BasePath = "/"
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Controller{opts: opts}
}

// YearMark pairs a selectable fiscal year with its display label.
type YearMark struct {
	Year  int    `json:"year"`
	Label string `json:"label"`
}

// RenderPage resolves the session and writes the full dashboard page to out.
// An empty sessionID mints a fresh session whose id the page carries for
// subsequent API calls.
func (c *Controller) RenderPage(ctx context.Context, sessionID string, out io.Writer) error {
	if c.opts.Service == nil {
		return errors.New("finboard: controller requires a service")
	}
	if c.opts.Renderer == nil {
		return errors.New("finboard: controller requires a renderer")
	}

	session := c.opts.Service.ResolveSession(ctx, sessionID)
	state := session.State()
	cards := c.opts.Service.Cards(ctx, session.ID())
	panel, err := c.opts.Service.Panel(ctx, session.ID())
	if err != nil {
		return err
	}

	data := map[string]any{
		"title":           pageTitle,
		"session_id":      session.ID(),
		"base_path":       c.opts.BasePath,
		"state":           stateContext(state),
		"cards":           cards.Cards,
		"panel":           panel,
		"company_options": CompanyOptions(),
		"group_options":   GroupOptions(),
		"year_marks":      yearMarks(c.opts.Service.Dataset()),
	}
	if _, err := c.opts.Renderer.Render(c.opts.Template, data, out); err != nil {
		return fmt.Errorf("finboard: render page: %w", err)
	}
	c.opts.Telemetry.Record(ctx, "finboard.page.render", map[string]any{
		"session_id": session.ID(),
		"template":   c.opts.Template,
	})
	return nil
}

// stateContext flattens a ControlState into primitives for the template
// engine, which compares option values against plain strings and ints.
func stateContext(state ControlState) map[string]any {
	return map[string]any{
		"company":  string(state.Company),
		"group":    string(state.Group),
		"year_min": state.YearMin,
		"year_max": state.YearMax,
	}
}

func yearMarks(dataset *Dataset) []YearMark {
	if dataset == nil {
		return nil
	}
	years := dataset.Years()
	labels := dataset.YearLabels()
	marks := make([]YearMark, 0, len(years))
	for i, year := range years {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		marks = append(marks, YearMark{Year: year, Label: label})
	}
	return marks
}
