package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func isIteratorDone(err error) bool {
	return err == iterator.Done
}

// patientDoc is the Firestore document representation of model.Patient
type patientDoc struct {
	ID        string    `firestore:"ID"`
	Phone     string    `firestore:"Phone"`
	Name      string    `firestore:"Name"`
	CreatedAt time.Time `firestore:"CreatedAt"`
	UpdatedAt time.Time `firestore:"UpdatedAt"`
}

func toPatientDoc(p *model.Patient) *patientDoc {
	return &patientDoc{
		ID:        string(p.ID),
		Phone:     string(p.Phone),
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromPatientDoc(d *patientDoc) *model.Patient {
	return &model.Patient{
		ID:        types.PatientID(d.ID),
		Phone:     types.Phone(d.Phone),
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type patientRepository struct {
	client *firestore.Client
}

func newPatientRepository(client *firestore.Client) *patientRepository {
	return &patientRepository{client: client}
}

func (r *patientRepository) collection() *firestore.CollectionRef {
	return r.client.Collection("patients")
}

// Upsert is keyed by phone: the document ID is the digits-only number, which
// makes repeated upserts for the same caller idempotent.
func (r *patientRepository) Upsert(ctx context.Context, phone types.Phone, name string) (*model.Patient, error) {
	if err := phone.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid phone for patient upsert")
	}

	docRef := r.collection().Doc(string(phone))
	now := time.Now().UTC()

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			return nil, goerr.Wrap(err, "failed to get patient", goerr.V("phone", phone.Masked()))
		}

		if name == "" {
			name = model.UnknownPatientName
		}
		created := &model.Patient{
			ID:        types.NewPatientID(),
			Phone:     phone,
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := docRef.Set(ctx, toPatientDoc(created)); err != nil {
			return nil, goerr.Wrap(err, "failed to create patient", goerr.V("phone", phone.Masked()))
		}
		return created, nil
	}

	var d patientDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal patient", goerr.V("phone", phone.Masked()))
	}
	existing := fromPatientDoc(&d)

	if name != "" && name != existing.Name {
		existing.Name = name
		existing.UpdatedAt = now
		if _, err := docRef.Set(ctx, toPatientDoc(existing)); err != nil {
			return nil, goerr.Wrap(err, "failed to update patient name", goerr.V("phone", phone.Masked()))
		}
	}

	return existing, nil
}

func (r *patientRepository) Get(ctx context.Context, phone types.Phone) (*model.Patient, error) {
	doc, err := r.collection().Doc(string(phone)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "patient not found", goerr.V("phone", phone.Masked()))
		}
		return nil, goerr.Wrap(err, "failed to get patient", goerr.V("phone", phone.Masked()))
	}

	var d patientDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal patient", goerr.V("phone", phone.Masked()))
	}

	return fromPatientDoc(&d), nil
}

func (r *patientRepository) Count(ctx context.Context) (int, error) {
	return countDocuments(ctx, r.collection().Query)
}
