package queries

import (
	"context"

	finboard "github.com/AyushKumar-alt/Finance-Dashboard1/components/finboard"
	gocommand "github.com/goliatone/go-command"
)

// CardsRequest identifies whose card region to compute.
type CardsRequest struct {
	SessionID string `json:"session_id"`
}

type cardsService interface {
	Cards(ctx context.Context, sessionID string) finboard.CardsView
}

// CardsQuery executes the read-only card region computation.
type CardsQuery struct {
	service cardsService
}

// NewCardsQuery builds the query.
func NewCardsQuery(service cardsService) *CardsQuery {
	return &CardsQuery{service: service}
}

var _ gocommand.Querier[CardsRequest, finboard.CardsView] = (*CardsQuery)(nil)

// Query computes the cards for the session's current selections.
func (q *CardsQuery) Query(ctx context.Context, req CardsRequest) (finboard.CardsView, error) {
	return q.service.Cards(ctx, req.SessionID), nil
}
