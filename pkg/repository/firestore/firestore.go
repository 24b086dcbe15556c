package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/darkking4096/Agente-IA/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

// Firestore is the durable repository backend
type Firestore struct {
	client  *firestore.Client
	patient *patientRepository
	booking *bookingRepository
	turn    *turnRepository
}

var _ interfaces.Repository = &Firestore{}

func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	return &Firestore{
		client:  client,
		patient: newPatientRepository(client),
		booking: newBookingRepository(client),
		turn:    newTurnRepository(client),
	}, nil
}

func (f *Firestore) Patient() interfaces.PatientRepository {
	return f.patient
}

func (f *Firestore) Booking() interfaces.BookingRepository {
	return f.booking
}

func (f *Firestore) Turn() interfaces.TurnRepository {
	return f.turn
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// countDocuments counts documents in a query by iterating document refs only
func countDocuments(ctx context.Context, q firestore.Query) (int, error) {
	iter := q.Select().Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err != nil {
			if isIteratorDone(err) {
				break
			}
			return 0, goerr.Wrap(err, "failed to count documents")
		}
		count++
	}
	return count, nil
}
