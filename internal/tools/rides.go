package tools

import (
	"context"
	"errors"

	"roundtable/internal/models"
	"roundtable/internal/store"
)

var rideStatuses = []string{
	models.RidePending, models.RideClaimed, models.RideInProgress,
	models.RideCompleted, models.RideCancelled,
}

func (r *Registry) viewRidesTool() *Tool {
	return &Tool{
		Name:        "view_rides",
		Description: "View ride requests in the Chariot system, optionally filtered by status. Read-only.",
		Kind:        KindRead,
		Schema: Schema{
			Properties: map[string]Property{
				"status": {Type: "string", Description: "Filter by status (optional)", Enum: rideStatuses},
				"limit":  {Type: "number", Description: "Number of rides to retrieve (default: 20)"},
			},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			rides, err := r.store.ListRides(ctx, id.OrganizationID, args.String("status"), args.Int("limit"))
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"rides": rides, "count": len(rides)}, nil
		},
	}
}

func (r *Registry) createRideTool() *Tool {
	return &Tool{
		Name:        "create_ride",
		Description: "Create a new ride request in the Chariot system. This files a pickup request for a member.",
		Kind:        KindWrite,
		Schema: Schema{
			Properties: map[string]Property{
				"user_id":          {Type: "string", Description: "User ID of the member the ride is for (defaults to the current user)"},
				"pickup_location":  {Type: "string", Description: "Pickup location"},
				"dropoff_location": {Type: "string", Description: "Dropoff location"},
				"pickup_time":      {Type: "string", Description: "Requested pickup time (YYYY-MM-DDTHH:MM:SS)"},
				"notes":            {Type: "string", Description: "Additional notes for the driver"},
			},
			Required: []string{"pickup_location", "dropoff_location"},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			riderID := args.String("user_id")
			if riderID == "" {
				riderID = id.UserID
			}

			params := store.RideParams{
				PickupLocation:  args.String("pickup_location"),
				DropoffLocation: args.String("dropoff_location"),
				Notes:           args.String("notes"),
			}
			if pickup, present, err := args.Time("pickup_time"); err != nil {
				return nil, validationErr("invalid pickup_time: %v", err)
			} else if present {
				params.PickupTime = timePtr(pickup)
			}

			ride, err := r.store.CreateRide(ctx, id.OrganizationID, riderID, params)
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"success": true, "ride": ride}, nil
		},
	}
}

func (r *Registry) updateRideStatusTool() *Tool {
	return &Tool{
		Name:        "update_ride_status",
		Description: "Update a ride's status or claim it as a driver. This changes the ride's state.",
		Kind:        KindWrite,
		Schema: Schema{
			Properties: map[string]Property{
				"ride_id":   {Type: "string", Description: "The ride ID"},
				"status":    {Type: "string", Description: "New status", Enum: rideStatuses},
				"driver_id": {Type: "string", Description: "Driver user ID (when claiming a ride)"},
			},
			Required: []string{"ride_id", "status"},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			ride, err := r.store.UpdateRideStatus(ctx, id.OrganizationID,
				args.String("ride_id"), args.String("status"), args.String("driver_id"))
			if errors.Is(err, store.ErrNotFound) {
				return nil, notFoundErr("no ride found with that ID in this organization")
			}
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"success": true, "ride": ride, "updated_by": id.UserID}, nil
		},
	}
}

func (r *Registry) viewChariotDriversTool() *Tool {
	return &Tool{
		Name:        "view_chariot_drivers",
		Description: "View all approved Chariot drivers in the organization. Read-only.",
		Kind:        KindRead,
		Schema:      Schema{},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			drivers, err := r.store.ListDrivers(ctx, id.OrganizationID)
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"drivers": drivers, "count": len(drivers)}, nil
		},
	}
}

func (r *Registry) addChariotDriverTool() *Tool {
	return &Tool{
		Name:        "add_chariot_driver",
		Description: "Add a member as an approved Chariot driver. This modifies the driver roster.",
		Kind:        KindWrite,
		Schema: Schema{
			Properties: map[string]Property{
				"user_id": {Type: "string", Description: "User ID of the member to approve as a driver"},
			},
			Required: []string{"user_id"},
		},
		Execute: func(ctx context.Context, id Identity, args Args) (any, *ExecError) {
			driver, err := r.store.AddDriver(ctx, id.OrganizationID, args.String("user_id"), id.UserID)
			if errors.Is(err, store.ErrAlreadyExists) {
				return nil, storeErr(errors.New("that user is already an approved driver"))
			}
			if err != nil {
				return nil, storeErr(err)
			}
			return map[string]any{"success": true, "driver": driver}, nil
		},
	}
}
