package tools

import "context"

func (r *Registry) viewAnnouncementsTool() *Tool {
	return &Tool{
		Name:        "view_announcements",
		Description: "View recent announcements posted in the organization. Read-only.",
		Kind:        KindRead,
		Schema: Schema{
			Properties: map[string]Property{
				"limit": {Type: "number", Description: "Number of announcements to retrieve (default: 10)"},
			},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			announcements, err := r.store.ListAnnouncements(ctx, id.OrganizationID, args.Int("limit"))
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"announcements": announcements, "count": len(announcements)}, nil
		},
	}
}

func (r *Registry) createAnnouncementTool() *Tool {
	return &Tool{
		Name:        "create_announcement",
		Description: "Create a new announcement in the organization. This posts a message visible to all members; only use it when explicitly asked to create an announcement.",
		Kind:        KindWrite,
		Schema: Schema{
			Properties: map[string]Property{
				"title":   {Type: "string", Description: "The announcement title"},
				"content": {Type: "string", Description: "The announcement content/message"},
			},
			Required: []string{"title", "content"},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			announcement, err := r.store.CreateAnnouncement(ctx, id.OrganizationID,
				args.String("title"), args.String("content"), id.UserID)
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"success": true, "announcement": announcement}, nil
		},
	}
}
