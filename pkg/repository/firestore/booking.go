package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// bookingDoc is the Firestore document representation of model.Booking
type bookingDoc struct {
	ID        string    `firestore:"ID"`
	PatientID string    `firestore:"PatientID"`
	Service   string    `firestore:"Service"`
	Specialty string    `firestore:"Specialty"`
	Urgency   int       `firestore:"Urgency"`
	Date      string    `firestore:"Date"`
	Time      string    `firestore:"Time"`
	Status    string    `firestore:"Status"`
	Notes     string    `firestore:"Notes"`
	CreatedAt time.Time `firestore:"CreatedAt"`
}

func toBookingDoc(b *model.Booking) *bookingDoc {
	return &bookingDoc{
		ID:        string(b.ID),
		PatientID: string(b.PatientID),
		Service:   b.Service,
		Specialty: b.Specialty,
		Urgency:   b.Urgency,
		Date:      b.Date,
		Time:      b.Time,
		Status:    string(b.Status),
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
	}
}

func fromBookingDoc(d *bookingDoc) *model.Booking {
	return &model.Booking{
		ID:        types.BookingID(d.ID),
		PatientID: types.PatientID(d.PatientID),
		Service:   d.Service,
		Specialty: d.Specialty,
		Urgency:   d.Urgency,
		Date:      d.Date,
		Time:      d.Time,
		Status:    model.BookingStatus(d.Status),
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
	}
}

type bookingRepository struct {
	client *firestore.Client
}

func newBookingRepository(client *firestore.Client) *bookingRepository {
	return &bookingRepository{client: client}
}

func (r *bookingRepository) collection() *firestore.CollectionRef {
	return r.client.Collection("bookings")
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	if booking.PatientID == "" {
		return nil, goerr.New("booking requires a patient ID")
	}

	created := *booking
	if created.ID == "" {
		created.ID = types.NewBookingID()
	}
	if created.Status == "" {
		created.Status = model.BookingStatusConfirmed
	}
	created.CreatedAt = time.Now().UTC()

	docRef := r.collection().Doc(string(created.ID))
	if _, err := docRef.Set(ctx, toBookingDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create booking", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *bookingRepository) List(ctx context.Context, limit int) ([]*model.Booking, error) {
	q := r.collection().OrderBy("CreatedAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	bookings := make([]*model.Booking, 0)
	for {
		doc, err := iter.Next()
		if err != nil {
			if isIteratorDone(err) {
				break
			}
			return nil, goerr.Wrap(err, "failed to iterate bookings")
		}

		var d bookingDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal booking")
		}
		bookings = append(bookings, fromBookingDoc(&d))
	}

	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context) (int, error) {
	return countDocuments(ctx, r.collection().Query)
}
