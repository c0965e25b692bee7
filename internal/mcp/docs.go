package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `cadence tracks a personal calendar of tasks, projects, expenses and workouts, including recurring series.

Core concepts (keep this mental model small):
- Event: one persisted entry with a start/end, type, status and priority. Expense events carry an amount; workout events carry a workout_log.
- Series: a recurring event is stored once; occurrences inside a window are expanded on demand. Occurrence IDs look like <base>_recur_<millis> and are never stored.
- Scope: editing or deleting a series member needs a blast radius. "this" touches only the target, "following" splits the series at the target, "all" rewrites every member.
- Saving is optimistic: local state changes immediately, server calls run in the background. get_status reports in-flight work and the last batch's errors.

Rules of engagement (default workflow):
1) Orient: call list_events for the window you care about (pass refresh=true after external changes).
2) Write: save_event creates or updates; delete_event removes. Either may answer scope_required for series members.
3) Answer scope_required with choose_scope (this/following/all) or cancel_scope. No other mutation is accepted while a choice is pending.
4) Recover: undo and redo step through recent actions locally; the server catches up on the next refresh.
5) Workouts: list_presets shows named exercise templates; pass preset on save_event to fill an empty workout_log.
6) Share: export_calendar renders any window as an ICS document.

Docs (progressive disclosure):
- cadence://docs/scopes (how series edits resolve)
- cadence://docs/recurrence (cadences, windows and occurrence IDs)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "cadence://docs/scopes",
		Name:        "docs_scopes",
		Title:       "Series edit scopes",
		Description: "What this, following and all do to a recurring series.",
		Content: `# Series edit scopes

Editing or deleting one member of a recurring series needs a scope.

## this
Only the target changes. An edited member detaches from its series: it loses
its series link and recurrence and becomes a standalone event. A deleted
member simply disappears; the rest of the series is untouched.

## following
The series splits at the target's start date. Members starting on or after
the target are removed; the target carries the edit forward under a new
series identity. Members before the split keep the old series untouched.

## all
Every member of the series is replaced by (or deleted along with) the
target. For edits the target becomes the sole remaining member.

## Occurrence targets
A scope choice may target an expanded occurrence (an ID containing
` + "`_recur_`" + `). Occurrences are virtual: editing one with scope "this"
materializes it as a new standalone event; deleting one with nothing
persisted is a local no-op.
`,
	},
	{
		URI:         "cadence://docs/recurrence",
		Name:        "docs_recurrence",
		Title:       "Recurrence expansion",
		Description: "Supported cadences and how windowed occurrences are produced.",
		Content: `# Recurrence expansion

Supported cadences: daily, weekly, biweekly, monthly, yearly.

A recurring event is stored once. list_events expands it into the requested
window: the stored event appears under its own ID when its date falls inside
the window, and later occurrences appear with synthetic IDs of the form
` + "`<base>_recur_<unix-millis>`" + `.

Monthly and yearly cadences use calendar arithmetic, so a Jan 31 monthly
event lands on Mar 2 or Mar 3 rather than being skipped in February.

Expansion is capped (at most 100 occurrences per event per call) and stops
at the event's recurrence_end when one is set. Occurrence IDs are stable:
the same event and window always produce the same IDs, so they are safe to
pass back to save_event and delete_event.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
