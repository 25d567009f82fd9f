package tools

import (
	"context"
	"errors"

	"roundtable/internal/models"
	"roundtable/internal/store"
)

// requireAdmin gates roster mutations on the caller holding the admin
// role in the organization.
func (r *Registry) requireAdmin(ctx context.Context, id Identity) *ExecError {
	role, err := r.store.MembershipRole(ctx, id.OrganizationID, id.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return unauthorizedErr("you are not a member of this organization")
	}
	if err != nil {
		return storeErr(err)
	}
	if role != models.RoleAdmin {
		return unauthorizedErr("only an organization admin can do that")
	}
	return nil
}

func (r *Registry) viewMembersTool() *Tool {
	return &Tool{
		Name:        "view_members",
		Description: "View all members in the organization with their roles and payment classes. Read-only; use this to see who is in the organization.",
		Kind:        KindRead,
		Schema:      Schema{},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			members, err := r.store.ListMembers(ctx, id.OrganizationID)
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"members": members, "count": len(members)}, nil
		},
	}
}

func (r *Registry) addMemberTool() *Tool {
	return &Tool{
		Name:        "add_member",
		Description: "Add a new member to the organization by email. This modifies the roster. The user must already have an account.",
		Kind:        KindWrite,
		Schema: Schema{
			Properties: map[string]Property{
				"user_email": {Type: "string", Description: "Email of the user to add"},
				"role": {Type: "string", Description: "Member role (default: member)",
					Enum: []string{models.RoleAdmin, models.RoleMember}},
				"payment_class": {Type: "string", Description: "Payment class name (e.g. 'general_member', 'new_member', 'senior')"},
			},
			Required: []string{"user_email"},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			if execErr := r.requireAdmin(ctx, id); execErr != nil {
				return nil, execErr
			}

			profile, err := r.store.ProfileByEmail(ctx, args.String("user_email"))
			if errors.Is(err, store.ErrNotFound) {
				return nil, notFoundErr("no account found with that email; they must create an account first")
			}
			if err != nil {
				return nil, storeErr(err)
			}

			membership, err := r.store.AddMember(ctx, id.OrganizationID, profile.ID,
				args.String("role"), args.String("payment_class"))
			if errors.Is(err, store.ErrAlreadyExists) {
				return nil, storeErr(errors.New("that user is already a member of this organization"))
			}
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"success": true, "membership": membership, "added_by": id.UserID}, nil
		},
	}
}

func (r *Registry) updateMemberRoleTool() *Tool {
	return &Tool{
		Name:        "update_member_role",
		Description: "Update a member's role in the organization. This modifies the roster.",
		Kind:        KindWrite,
		Schema: Schema{
			Properties: map[string]Property{
				"user_id": {Type: "string", Description: "User ID of the member to update"},
				"role": {Type: "string", Description: "New role",
					Enum: []string{models.RoleAdmin, models.RoleMember}},
			},
			Required: []string{"user_id", "role"},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			if execErr := r.requireAdmin(ctx, id); execErr != nil {
				return nil, execErr
			}

			membership, err := r.store.UpdateMemberRole(ctx, id.OrganizationID,
				args.String("user_id"), args.String("role"))
			if errors.Is(err, store.ErrNotFound) {
				return nil, notFoundErr("that user is not a member of this organization")
			}
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"success": true, "membership": membership, "updated_by": id.UserID}, nil
		},
	}
}

func (r *Registry) updateMemberPaymentClassTool() *Tool {
	return &Tool{
		Name:        "update_member_payment_class",
		Description: "Update a member's payment class (membership tier). This modifies the member's dues schedule.",
		Kind:        KindWrite,
		Schema: Schema{
			Properties: map[string]Property{
				"user_id":       {Type: "string", Description: "User ID of the member to update"},
				"payment_class": {Type: "string", Description: "New payment class name"},
			},
			Required: []string{"user_id", "payment_class"},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			membership, err := r.store.UpdateMemberPaymentClass(ctx, id.OrganizationID,
				args.String("user_id"), args.String("payment_class"))
			if errors.Is(err, store.ErrNotFound) {
				return nil, notFoundErr("that user is not a member of this organization")
			}
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"success": true, "membership": membership, "updated_by": id.UserID}, nil
		},
	}
}
