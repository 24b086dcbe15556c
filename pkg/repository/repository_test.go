package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/darkking4096/Agente-IA/pkg/domain/interfaces"
	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
	"github.com/darkking4096/Agente-IA/pkg/repository/firestore"
	"github.com/darkking4096/Agente-IA/pkg/repository/memory"
)

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Upsert creates a patient with placeholder name", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		patient, err := repo.Patient().Upsert(ctx, "5511988887777", "")
		gt.NoError(t, err).Required()

		gt.Value(t, patient.Phone).Equal(types.Phone("5511988887777"))
		gt.Value(t, patient.Name).Equal(model.UnknownPatientName)
		gt.Value(t, patient.ID.String()).NotEqual("")
		gt.Bool(t, patient.CreatedAt.IsZero()).False()
	})

	t.Run("Upsert is idempotent and keeps the ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Patient().Upsert(ctx, "5511977776666", "")
		gt.NoError(t, err).Required()

		second, err := repo.Patient().Upsert(ctx, "5511977776666", "")
		gt.NoError(t, err).Required()

		gt.Value(t, second.ID).Equal(first.ID)

		count, err := repo.Patient().Count(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(1)
	})

	t.Run("Upsert updates the name once it is known", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Patient().Upsert(ctx, "5511966665555", "")
		gt.NoError(t, err).Required()
		gt.Value(t, created.Name).Equal(model.UnknownPatientName)

		updated, err := repo.Patient().Upsert(ctx, "5511966665555", "Maria Silva")
		gt.NoError(t, err).Required()
		gt.Value(t, updated.ID).Equal(created.ID)
		gt.Value(t, updated.Name).Equal("Maria Silva")

		retrieved, err := repo.Patient().Get(ctx, "5511966665555")
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Name).Equal("Maria Silva")
	})

	t.Run("Get returns error for unknown phone", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Patient().Get(ctx, "5500000000000")
		gt.Error(t, err)
	})

	t.Run("Create booking assigns ID, status and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		booking, err := repo.Booking().Create(ctx, &model.Booking{
			PatientID: types.NewPatientID(),
			Service:   "Limpeza",
			Specialty: "Clínica Geral",
			Urgency:   3,
			Date:      "amanhã",
			Time:      "14:30",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, booking.ID.String()).NotEqual("")
		gt.Value(t, booking.Status).Equal(model.BookingStatusConfirmed)
		gt.Bool(t, booking.CreatedAt.IsZero()).False()
	})

	t.Run("List returns bookings newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		patientID := types.NewPatientID()
		for i := 0; i < 3; i++ {
			_, err := repo.Booking().Create(ctx, &model.Booking{
				PatientID: patientID,
				Service:   fmt.Sprintf("Serviço %d", i),
			})
			gt.NoError(t, err).Required()
		}

		bookings, err := repo.Booking().List(ctx, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, bookings).Length(2)
		gt.Bool(t, bookings[0].CreatedAt.Before(bookings[1].CreatedAt)).False()

		count, err := repo.Booking().Count(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(3)
	})

	t.Run("Recent returns turns in chronological order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		phone := types.Phone("5511955554444")
		patientID := types.NewPatientID()
		for i := 0; i < 5; i++ {
			err := repo.Turn().Append(ctx, &model.Turn{
				PatientID: patientID,
				Phone:     phone,
				UserText:  fmt.Sprintf("mensagem %d", i),
				BotText:   fmt.Sprintf("resposta %d", i),
				State:     types.StateCollecting,
			})
			gt.NoError(t, err).Required()
		}

		turns, err := repo.Turn().Recent(ctx, phone, 3)
		gt.NoError(t, err).Required()
		gt.Array(t, turns).Length(3)

		gt.Value(t, turns[0].UserText).Equal("mensagem 2")
		gt.Value(t, turns[2].UserText).Equal("mensagem 4")
	})

	t.Run("Recent filters by phone", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Turn().Append(ctx, &model.Turn{
			Phone:    "5511944443333",
			UserText: "oi",
			BotText:  "olá",
			State:    types.StateIdentifying,
		})).Required()
		gt.NoError(t, repo.Turn().Append(ctx, &model.Turn{
			Phone:    "5511933332222",
			UserText: "bom dia",
			BotText:  "bom dia",
			State:    types.StateIdentifying,
		})).Required()

		turns, err := repo.Turn().Recent(ctx, "5511944443333", 10)
		gt.NoError(t, err).Required()
		gt.Array(t, turns).Length(1)
		gt.Value(t, turns[0].UserText).Equal("oi")
	})
}

func TestRepository_Memory(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, os.Getenv("FIRESTORE_DATABASE_ID"))
		gt.NoError(t, err).Required()
		return repo
	})
}
