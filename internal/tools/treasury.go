package tools

import (
	"context"

	"roundtable/internal/models"
	"roundtable/internal/store"
)

func (r *Registry) viewMemberBalanceTool() *Tool {
	return &Tool{
		Name:        "view_member_balance",
		Description: "View a specific member's balance and recent transaction history. Read-only; use this to check how much a member owes or has paid.",
		Kind:        KindRead,
		Schema: Schema{
			Properties: map[string]Property{
				"user_id": {Type: "string", Description: "The user ID of the member"},
			},
			Required: []string{"user_id"},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			balance, err := r.store.MemberBalance(ctx, id.OrganizationID, args.String("user_id"))
			if err != nil {
				return nil, storeErr(err)
			}
			return balance, nil
		},
	}
}

func (r *Registry) addPaymentTransactionTool() *Tool {
	return &Tool{
		Name:        "add_payment_transaction",
		Description: "Add a payment transaction (charge, payment, or dues) for a member. This writes to the member's ledger; use only to record payments or charges.",
		Kind:        KindWrite,
		Schema: Schema{
			Properties: map[string]Property{
				"user_id": {Type: "string", Description: "The user ID of the member the transaction is for"},
				"amount":  {Type: "number", Description: "The transaction amount in dollars"},
				"type": {Type: "string", Description: "Type of transaction: 'charge' (adds to balance), 'payment' (reduces balance), or 'dues'",
					Enum: []string{models.TransactionCharge, models.TransactionPayment, models.TransactionDues}},
				"description": {Type: "string", Description: "Description of the transaction"},
			},
			Required: []string{"user_id", "amount", "type", "description"},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			amount := args.Number("amount")
			if amount <= 0 {
				return nil, validationErr("amount must be greater than zero")
			}

			tx, err := r.store.AddTransaction(ctx, id.OrganizationID, args.String("user_id"),
				amount, args.String("type"), args.String("description"), id.UserID)
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"success": true, "transaction": tx}, nil
		},
	}
}

func (r *Registry) viewPaymentClassesTool() *Tool {
	return &Tool{
		Name:        "view_payment_classes",
		Description: "View all payment classes (membership tiers) in the organization with their dues amounts. Read-only.",
		Kind:        KindRead,
		Schema:      Schema{},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			classes, err := r.store.ListPaymentClasses(ctx, id.OrganizationID)
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"payment_classes": classes, "count": len(classes)}, nil
		},
	}
}

func (r *Registry) createPaymentClassTool() *Tool {
	return &Tool{
		Name:        "create_payment_class",
		Description: "Create a new payment class (membership tier) for the organization. This adds a tier members can be assigned to.",
		Kind:        KindWrite,
		Schema: Schema{
			Properties: map[string]Property{
				"class_name":   {Type: "string", Description: "Internal name for the class (e.g. 'senior', 'new_member')"},
				"display_name": {Type: "string", Description: "Display name shown to users"},
				"dues_amount":  {Type: "number", Description: "Dues amount in dollars"},
				"billing_frequency": {Type: "string", Description: "How often dues are charged",
					Enum: []string{"semester", "monthly", "annual", "one_time"}},
				"description": {Type: "string", Description: "Optional description of this payment class"},
			},
			Required: []string{"class_name", "display_name", "dues_amount", "billing_frequency"},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			if args.Number("dues_amount") < 0 {
				return nil, validationErr("dues_amount cannot be negative")
			}

			class, err := r.store.CreatePaymentClass(ctx, id.OrganizationID, store.PaymentClassParams{
				ClassName:        args.String("class_name"),
				DisplayName:      args.String("display_name"),
				DuesAmount:       args.Number("dues_amount"),
				BillingFrequency: args.String("billing_frequency"),
				Description:      args.String("description"),
			})
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"success": true, "payment_class": class, "created_by": id.UserID}, nil
		},
	}
}
