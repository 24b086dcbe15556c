package memory

import (
	"context"
	"sync"
	"time"

	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type patientRepository struct {
	mu       sync.RWMutex
	patients map[types.Phone]*model.Patient
}

func newPatientRepository() *patientRepository {
	return &patientRepository{
		patients: make(map[types.Phone]*model.Patient),
	}
}

func copyPatient(p *model.Patient) *model.Patient {
	copied := *p
	return &copied
}

func (r *patientRepository) Upsert(ctx context.Context, phone types.Phone, name string) (*model.Patient, error) {
	if err := phone.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid phone for patient upsert")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()

	if existing, ok := r.patients[phone]; ok {
		if name != "" && name != existing.Name {
			existing.Name = name
			existing.UpdatedAt = now
		}
		return copyPatient(existing), nil
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
	r.patients[phone] = created

	return copyPatient(created), nil
}

func (r *patientRepository) Get(ctx context.Context, phone types.Phone) (*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patient, ok := r.patients[phone]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "patient not found", goerr.V("phone", phone.Masked()))
	}

	return copyPatient(patient), nil
}

func (r *patientRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.patients), nil
}
