package mcp

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/halcyra/cadence/internal/app"
	"github.com/halcyra/cadence/internal/domain/event"
	"github.com/halcyra/cadence/internal/domain/series"
	"github.com/halcyra/cadence/internal/ics"
)

// registerTools wires every tool to the application service.
func registerTools(server *sdkmcp.Server, svc *app.Service) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_events",
		Description: "List the events visible in a date window, including expanded occurrences of recurring events, with optional type/status/search filters",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params ListEventsParams) (*sdkmcp.CallToolResult, ListEventsResult, error) {
		w, err := parseWindow(params.Start, params.End)
		if err != nil {
			return nil, ListEventsResult{}, err
		}
		if params.Refresh {
			if err := svc.Refresh(ctx, getUserID(ctx)); err != nil {
				return nil, ListEventsResult{}, toolError(err)
			}
		}
		visible := svc.Visible(w, event.Filters{
			Type:   params.Type,
			Status: params.Status,
			Search: params.Search,
		})
		return nil, ListEventsResult{Events: encodeEvents(visible)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_event",
		Description: "Create or update an event. Editing a recurring series member without a scope parks the edit and returns scope_required; answer with choose_scope or cancel_scope",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params SaveEventParams) (*sdkmcp.CallToolResult, ActionOutcome, error) {
		target, err := decodeEvent(params.Event)
		if err != nil {
			return nil, ActionOutcome{}, err
		}
		if params.Preset != "" && len(target.WorkoutLog) == 0 {
			log := svc.Presets().WorkoutLog(params.Preset)
			if log == nil {
				return nil, ActionOutcome{}, &APIError{
					Code: "PRESET_NOT_FOUND", Message: fmt.Sprintf("no preset named %q", params.Preset),
					RecoveryHint: "Call list_presets for available names",
				}
			}
			target.WorkoutLog = log
		}
		scope, err := parseOptionalScope(params.Scope)
		if err != nil {
			return nil, ActionOutcome{}, toolError(err)
		}
		res, err := svc.Save(ctx, getUserID(ctx), target, scope)
		if err != nil {
			return nil, ActionOutcome{}, toolError(err)
		}
		return nil, encodeOutcome(res), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_event",
		Description: "Delete an event by ID (a base event or an expanded occurrence ID). Deleting a series member without a scope parks the delete and returns scope_required",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params DeleteEventParams) (*sdkmcp.CallToolResult, ActionOutcome, error) {
		scope, err := parseOptionalScope(params.Scope)
		if err != nil {
			return nil, ActionOutcome{}, toolError(err)
		}
		res, err := svc.Delete(ctx, getUserID(ctx), params.ID, scope)
		if err != nil {
			return nil, ActionOutcome{}, toolError(err)
		}
		return nil, encodeOutcome(res), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "choose_scope",
		Description: "Apply the pending save or delete with the chosen scope: this (only the target), following (the target and later members) or all (the whole series)",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params ChooseScopeParams) (*sdkmcp.CallToolResult, ActionOutcome, error) {
		scope, err := series.ParseScope(params.Scope)
		if err != nil {
			return nil, ActionOutcome{}, toolError(err)
		}
		res, err := svc.ChooseScope(ctx, getUserID(ctx), scope)
		if err != nil {
			return nil, ActionOutcome{}, toolError(err)
		}
		return nil, encodeOutcome(res), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "cancel_scope",
		Description: "Discard the pending save or delete without applying it",
	}, func(_ context.Context, _ *sdkmcp.CallToolRequest, _ CancelScopeParams) (*sdkmcp.CallToolResult, CancelScopeResult, error) {
		svc.CancelScope()
		return nil, CancelScopeResult{Cancelled: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "undo",
		Description: "Revert the most recent save or delete locally and return the resulting event list",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ UndoParams) (*sdkmcp.CallToolResult, HistoryStepResult, error) {
		events, ok := svc.Undo(getUserID(ctx))
		return nil, HistoryStepResult{Applied: ok, Events: encodeEvents(events)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "redo",
		Description: "Re-apply the most recently undone action and return the resulting event list",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ RedoParams) (*sdkmcp.CallToolResult, HistoryStepResult, error) {
		events, ok := svc.Redo(getUserID(ctx))
		return nil, HistoryStepResult{Applied: ok, Events: encodeEvents(events)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_status",
		Description: "Report whether remote saves are in flight, whether a scope choice is pending, undo/redo availability and the last batch's errors",
	}, func(_ context.Context, _ *sdkmcp.CallToolRequest, _ GetStatusParams) (*sdkmcp.CallToolResult, app.Status, error) {
		return nil, svc.Status(), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_presets",
		Description: "List the configured workout presets usable with save_event",
	}, func(_ context.Context, _ *sdkmcp.CallToolRequest, _ ListPresetsParams) (*sdkmcp.CallToolResult, ListPresetsResult, error) {
		var result ListPresetsResult
		for _, p := range svc.Presets().List() {
			result.Presets = append(result.Presets, PresetPayload{Name: p.Name, Exercises: p.Exercises})
		}
		return nil, result, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_calendar",
		Description: "Export the events visible in a date window as an iCalendar (ICS) document",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params ExportCalendarParams) (*sdkmcp.CallToolResult, ExportCalendarResult, error) {
		w, err := parseWindow(params.Start, params.End)
		if err != nil {
			return nil, ExportCalendarResult{}, err
		}
		visible := svc.Visible(w, event.Filters{})
		return nil, ExportCalendarResult{ICS: ics.Export(visible)}, nil
	})
}

func parseWindow(start, end string) (event.Window, error) {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return event.Window{}, fmt.Errorf("parsing start: %w", err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return event.Window{}, fmt.Errorf("parsing end: %w", err)
	}
	if e.Before(s) {
		return event.Window{}, fmt.Errorf("window end %s precedes start %s", end, start)
	}
	return event.Window{Start: s, End: e}, nil
}

func parseOptionalScope(s string) (series.Scope, error) {
	if s == "" {
		return "", nil
	}
	return series.ParseScope(s)
}

func encodeOutcome(res app.ActionResult) ActionOutcome {
	out := ActionOutcome{ScopeRequired: res.ScopeRequired, Saving: res.Saving}
	if res.Event != nil {
		p := encodeEvent(*res.Event)
		out.Event = &p
	}
	return out
}
