package tools

import (
	"context"

	"roundtable/internal/store"
)

func (r *Registry) viewEventsTool() *Tool {
	return &Tool{
		Name:        "view_events",
		Description: "View upcoming or recent events in the organization calendar. Read-only.",
		Kind:        KindRead,
		Schema: Schema{
			Properties: map[string]Property{
				"limit":         {Type: "number", Description: "Number of events to retrieve (default: 10)"},
				"upcoming_only": {Type: "boolean", Description: "Only show future events (default: true)"},
			},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			events, err := r.store.ListEvents(ctx, id.OrganizationID, args.Int("limit"), args.Bool("upcoming_only", true))
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"events": events, "count": len(events)}, nil
		},
	}
}

func (r *Registry) createEventTool() *Tool {
	return &Tool{
		Name:        "create_event",
		Description: "Create a new event in the organization calendar. This adds the event for all members to see.",
		Kind:        KindWrite,
		Schema: Schema{
			Properties: map[string]Property{
				"title":       {Type: "string", Description: "Event title"},
				"description": {Type: "string", Description: "Event description"},
				"location":    {Type: "string", Description: "Event location"},
				"start_time":  {Type: "string", Description: "Start time (YYYY-MM-DDTHH:MM:SS)"},
				"end_time":    {Type: "string", Description: "End time (YYYY-MM-DDTHH:MM:SS)"},
			},
			Required: []string{"title", "start_time", "end_time"},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			start, _, err := args.Time("start_time")
			if err != nil {
				return nil, validationErr("invalid start_time: %v", err)
			}
			end, _, err := args.Time("end_time")
			if err != nil {
				return nil, validationErr("invalid end_time: %v", err)
			}
			if !end.After(start) {
				return nil, validationErr("end_time must be after start_time")
			}

			event, err := r.store.CreateEvent(ctx, id.OrganizationID, store.EventParams{
				Title:       args.String("title"),
				Description: args.String("description"),
				Location:    args.String("location"),
				StartTime:   start,
				EndTime:     end,
			}, id.UserID)
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"success": true, "event": event}, nil
		},
	}
}
