package interfaces

import (
	"context"

	"github.com/darkking4096/Agente-IA/pkg/domain/model"
)

// BookingRepository defines the interface for Booking data persistence
type BookingRepository interface {
	// Create stores a new booking and returns it with ID and timestamps set
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)

	// List retrieves the most recent bookings, newest first
	List(ctx context.Context, limit int) ([]*model.Booking, error)

	// Count returns the number of stored bookings
	Count(ctx context.Context) (int, error)
}
