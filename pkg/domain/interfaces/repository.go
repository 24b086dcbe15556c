package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Patient() PatientRepository
	Booking() BookingRepository
	Turn() TurnRepository

	Close() error
}
