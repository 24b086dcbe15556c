package types

import "github.com/google/uuid"

// PatientID is a UUID-based identifier for a durable patient record
type PatientID string

// NewPatientID generates a new UUID v4 PatientID
func NewPatientID() PatientID {
	return PatientID(uuid.New().String())
}

// String returns the string representation of the patient ID
func (id PatientID) String() string {
	return string(id)
}

// BookingID is a UUID-based identifier for a confirmed booking
type BookingID string

// NewBookingID generates a new UUID v4 BookingID
func NewBookingID() BookingID {
	return BookingID(uuid.New().String())
}

// String returns the string representation of the booking ID
func (id BookingID) String() string {
	return string(id)
}
