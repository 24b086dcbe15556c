package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type bookingRepository struct {
	mu       sync.RWMutex
	bookings map[types.BookingID]*model.Booking
}

func newBookingRepository() *bookingRepository {
	return &bookingRepository{
		bookings: make(map[types.BookingID]*model.Booking),
	}
}

func copyBooking(b *model.Booking) *model.Booking {
	copied := *b
	return &copied
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	if booking.PatientID == "" {
		return nil, goerr.New("booking requires a patient ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyBooking(booking)
	if created.ID == "" {
		created.ID = types.NewBookingID()
	}
	if created.Status == "" {
		created.Status = model.BookingStatusConfirmed
	}
	created.CreatedAt = time.Now().UTC()

	r.bookings[created.ID] = created
	return copyBooking(created), nil
}

func (r *bookingRepository) List(ctx context.Context, limit int) ([]*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*model.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		all = append(all, copyBooking(b))
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *bookingRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.bookings), nil
}
