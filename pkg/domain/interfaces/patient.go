package interfaces

import (
	"context"

	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
)

// PatientRepository defines the interface for Patient data persistence
type PatientRepository interface {
	// Upsert creates the patient for the phone number if absent, and updates
	// the stored name when a non-empty name differs from the recorded one.
	// It is idempotent and keyed by phone.
	Upsert(ctx context.Context, phone types.Phone, name string) (*model.Patient, error)

	// Get retrieves a patient by phone number
	Get(ctx context.Context, phone types.Phone) (*model.Patient, error)

	// Count returns the number of stored patients
	Count(ctx context.Context) (int, error)
}
