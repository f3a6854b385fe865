package queries

import (
	"context"

	finboard "github.com/AyushKumar-alt/Finance-Dashboard1/components/finboard"
	gocommand "github.com/goliatone/go-command"
)

// PanelRequest identifies whose panel region to render.
type PanelRequest struct {
	SessionID string `json:"session_id"`
}

type panelService interface {
	Panel(ctx context.Context, sessionID string) (finboard.PanelView, error)
}

// PanelQuery executes the read-only panel region computation.
type PanelQuery struct {
	service panelService
}

// NewPanelQuery builds the query.
func NewPanelQuery(service panelService) *PanelQuery {
	return &PanelQuery{service: service}
}

var _ gocommand.Querier[PanelRequest, finboard.PanelView] = (*PanelQuery)(nil)

// Query renders the chart, sparkline, and table for the session's current
// selections.
func (q *PanelQuery) Query(ctx context.Context, req PanelRequest) (finboard.PanelView, error) {
	return q.service.Panel(ctx, req.SessionID)
}
