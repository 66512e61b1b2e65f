package bookings

import "time"

type CreateBookingRequest struct {
	PropertyID  string    `json:"property_id" validate:"required,uuid4"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Notes       string    `json:"notes,omitempty" validate:"omitempty,max=500"`
}
