package memory

import (
	"github.com/darkking4096/Agente-IA/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

// Memory is an in-memory repository for development and tests
type Memory struct {
	patient *patientRepository
	booking *bookingRepository
	turn    *turnRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		patient: newPatientRepository(),
		booking: newBookingRepository(),
		turn:    newTurnRepository(),
	}
}

func (m *Memory) Patient() interfaces.PatientRepository {
	return m.patient
}

func (m *Memory) Booking() interfaces.BookingRepository {
	return m.booking
}

func (m *Memory) Turn() interfaces.TurnRepository {
	return m.turn
}

func (m *Memory) Close() error {
	return nil
}
