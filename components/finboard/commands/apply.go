package commands

import (
	"context"
	"errors"

	finboard "github.com/AyushKumar-alt/Finance-Dashboard1/components/finboard"
	gocommand "github.com/goliatone/go-command"
)

// ApplyControlsInput captures control selections submitted for a session.
type ApplyControlsInput struct {
	SessionID   string `json:"session_id"`
	Company     string `json:"company"`
	MetricGroup string `json:"metric_group"`
	YearMin     int    `json:"year_min"`
	YearMax     int    `json:"year_max"`
}

// State converts the input into a ControlState.
func (i ApplyControlsInput) State() finboard.ControlState {
	return finboard.ControlState{
		Company: finboard.Company(i.Company),
		Group:   finboard.GroupKey(i.MetricGroup),
		YearMin: i.YearMin,
		YearMax: i.YearMax,
	}
}

type applyService interface {
	ApplyControls(ctx context.Context, req finboard.ApplyControlsRequest) (finboard.ApplyControlsResult, error)
}

// ApplyControlsCommand wraps Service.ApplyControls. It satisfies both
// go-command contracts: Execute applies and discards the result, Query
// applies and reports the authoritative session state back to the caller.
type ApplyControlsCommand struct {
	service   applyService
	telemetry Telemetry
}

// NewApplyControlsCommand creates the command.
func NewApplyControlsCommand(service applyService, telemetry Telemetry) *ApplyControlsCommand {
	return &ApplyControlsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var (
	_ gocommand.Commander[ApplyControlsInput]                             = (*ApplyControlsCommand)(nil)
	_ gocommand.Querier[ApplyControlsInput, finboard.ApplyControlsResult] = (*ApplyControlsCommand)(nil)
)

// Execute applies the selections to the session.
func (c *ApplyControlsCommand) Execute(ctx context.Context, msg ApplyControlsInput) error {
	_, err := c.Query(ctx, msg)
	return err
}

// Query applies the selections and returns the session's resulting state.
func (c *ApplyControlsCommand) Query(ctx context.Context, msg ApplyControlsInput) (finboard.ApplyControlsResult, error) {
	if c.service == nil {
		return finboard.ApplyControlsResult{}, errors.New("apply controls command requires service")
	}
	result, err := c.service.ApplyControls(ctx, finboard.ApplyControlsRequest{
		SessionID: msg.SessionID,
		State:     msg.State(),
	})
	if err != nil {
		return finboard.ApplyControlsResult{}, err
	}
	c.telemetry.Record(ctx, "finboard.controls.submitted", map[string]any{
		"session_id": result.SessionID,
		"regions":    len(result.Regions),
	})
	return result, nil
}
