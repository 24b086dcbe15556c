package model

import (
	"time"

	"github.com/darkking4096/Agente-IA/pkg/domain/types"
)

// UnknownPatientName is stored until the caller introduces themselves
const UnknownPatientName = "Não informado"

// Patient is the durable record for one caller identity
type Patient struct {
	ID        types.PatientID
	Phone     types.Phone `masq:"secret"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
