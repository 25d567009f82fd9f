package tools

import (
	"context"
	"errors"

	"roundtable/internal/models"
	"roundtable/internal/store"
)

var incidentStatuses = []string{
	models.IncidentPending, models.IncidentReviewing,
	models.IncidentResolved, models.IncidentDismissed,
}

func (r *Registry) viewIncidentReportsTool() *Tool {
	return &Tool{
		Name:        "view_incident_reports",
		Description: "View incident reports in the organization, optionally filtered by status. Read-only.",
		Kind:        KindRead,
		Schema: Schema{
			Properties: map[string]Property{
				"status": {Type: "string", Description: "Filter by status (optional)", Enum: incidentStatuses},
				"limit":  {Type: "number", Description: "Number of reports to retrieve (default: 20)"},
			},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			reports, err := r.store.ListIncidents(ctx, id.OrganizationID, args.String("status"), args.Int("limit"))
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"incident_reports": reports, "count": len(reports)}, nil
		},
	}
}

func (r *Registry) createIncidentReportTool() *Tool {
	return &Tool{
		Name:        "create_incident_report",
		Description: "Create a new incident report. This files a report attributed to the current user.",
		Kind:        KindWrite,
		Schema: Schema{
			Properties: map[string]Property{
				"title":         {Type: "string", Description: "Incident title"},
				"description":   {Type: "string", Description: "Detailed description of the incident"},
				"incident_date": {Type: "string", Description: "When the incident occurred (YYYY-MM-DDTHH:MM:SS)"},
				"location":      {Type: "string", Description: "Where the incident occurred"},
				"severity": {Type: "string", Description: "Severity level",
					Enum: []string{"low", "medium", "high", "critical"}},
			},
			Required: []string{"title", "description", "incident_date", "severity"},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			occurred, _, err := args.Time("incident_date")
			if err != nil {
				return nil, validationErr("invalid incident_date: %v", err)
			}

			report, err := r.store.CreateIncident(ctx, id.OrganizationID, store.IncidentParams{
				Title:        args.String("title"),
				Description:  args.String("description"),
				IncidentDate: occurred,
				Location:     args.String("location"),
				Severity:     args.String("severity"),
			}, id.UserID)
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"success": true, "incident_report": report}, nil
		},
	}
}

func (r *Registry) updateIncidentStatusTool() *Tool {
	return &Tool{
		Name:        "update_incident_status",
		Description: "Update the status of an incident report. This changes the report's review state.",
		Kind:        KindWrite,
		Schema: Schema{
			Properties: map[string]Property{
				"incident_id": {Type: "string", Description: "The incident report ID"},
				"status":      {Type: "string", Description: "New status", Enum: incidentStatuses},
			},
			Required: []string{"incident_id", "status"},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			report, err := r.store.UpdateIncidentStatus(ctx, id.OrganizationID,
				args.String("incident_id"), args.String("status"))
			if errors.Is(err, store.ErrNotFound) {
				return nil, notFoundErr("no incident report found with that ID in this organization")
			}
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"success": true, "incident_report": report, "updated_by": id.UserID}, nil
		},
	}
}
