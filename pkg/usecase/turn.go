package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
	"github.com/darkking4096/Agente-IA/pkg/utils/async"
	"github.com/darkking4096/Agente-IA/pkg/utils/logging"
)

// ProcessTurn runs the full pipeline for one inbound message and returns
// the reply to deliver. The session lock is held for the whole turn, so
// two messages from the same phone never interleave; messages from
// different phones run in parallel.
//
// Generation and notification failures are absorbed (fallback reply,
// logged warning); persistence failures abort the turn.
func (u *UseCases) ProcessTurn(ctx context.Context, phone types.Phone, message string) (*model.TurnResult, error) {
	if err := phone.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid caller identity")
	}
	if message == "" {
		return nil, goerr.New("empty message", goerr.V("phone", phone.Masked()))
	}

	logger := logging.From(ctx).With("phone", phone.Masked())

	sess, release := u.store.Acquire(phone)
	defer release()

	sess.Touch()

	// The very first thing the caller said is kept verbatim as the
	// presenting issue, before extraction normalizes anything.
	if sess.Facts.Issue == "" {
		sess.Facts.Issue = truncateIssue(message)
	}

	delta := ExtractFacts(message, sess, u.clinic)
	sess.Facts.Apply(delta)
	if delta.Contact != "" {
		sess.Context["contact_number"] = delta.Contact
	}
	if sess.Facts.Specialty != "" {
		sess.Context["specialty"] = sess.Facts.Specialty
	}

	patient, err := u.repo.Patient().Upsert(ctx, phone, sess.Facts.Name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upsert patient", goerr.V("phone", phone.Masked()))
	}
	sess.PatientID = patient.ID

	history, err := u.repo.Turn().Recent(ctx, phone, u.historyLimit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load conversation history", goerr.V("phone", phone.Masked()))
	}

	prompt, err := u.prompts.Build(sess, message, history)
	if err != nil {
		return nil, err
	}

	reply, err := u.generator.Generate(ctx, prompt)
	if err != nil {
		logger.Warn("reply generation failed, using fallback", "error", err)
		reply = u.fallbackReply
	}

	prevState := sess.State
	sess.State = Transition(prevState, message, sess.Facts, reply)
	if sess.State != prevState {
		logger.Info("conversation state changed",
			"from", prevState, "to", sess.State, "turn", sess.TurnCount)
	}

	turn := &model.Turn{
		PatientID: sess.PatientID,
		Phone:     phone,
		UserText:  message,
		BotText:   reply,
		State:     sess.State,
	}
	turn.Truncate()
	if err := u.repo.Turn().Append(ctx, turn); err != nil {
		return nil, goerr.Wrap(err, "failed to record turn", goerr.V("phone", phone.Masked()))
	}

	result := &model.TurnResult{
		Phone:     phone,
		Reply:     reply,
		State:     sess.State,
		Facts:     sess.Facts,
		PatientID: sess.PatientID,
	}

	if sess.State == types.StateCompleted && prevState != types.StateCompleted {
		booking, err := u.createBooking(ctx, sess)
		if err != nil {
			return nil, err
		}
		result.BookingID = booking.ID
		u.notifyBooking(ctx, patient, booking)
	}

	return result, nil
}

// ResetSession drops the in-memory session for the phone number. The
// next message starts a fresh conversation; persisted records stay.
func (u *UseCases) ResetSession(phone types.Phone) bool {
	return u.store.Reset(phone)
}

// createBooking persists the appointment assembled from the collected
// facts. It only runs on the turn that reached COMPLETED, so at most one
// booking exists per conversation cycle.
func (u *UseCases) createBooking(ctx context.Context, sess *model.Session) (*model.Booking, error) {
	service := sess.Facts.Service
	if service == "" {
		service = DefaultService
	}
	specialty := sess.Context["specialty"]
	if specialty == "" {
		specialty = DefaultSpecialty
	}

	booking, err := u.repo.Booking().Create(ctx, &model.Booking{
		PatientID: sess.PatientID,
		Service:   service,
		Specialty: specialty,
		Urgency:   sess.Facts.Urgency,
		Date:      sess.Facts.DatePreference,
		Time:      sess.Facts.TimePreference,
		Notes:     sess.Facts.Issue,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create booking",
			goerr.V("patient_id", sess.PatientID))
	}

	sess.Context["booking_id"] = booking.ID.String()

	logging.From(ctx).Info("booking created",
		"booking_id", booking.ID,
		"service", booking.Service,
		"urgency", booking.Urgency)

	return booking, nil
}

// notifyBooking tells the staff about a fresh booking in the background.
// Delivery failure never affects the caller's turn.
func (u *UseCases) notifyBooking(ctx context.Context, patient *model.Patient, booking *model.Booking) {
	if u.notifier == nil {
		return
	}

	summary := fmt.Sprintf(
		"Novo agendamento confirmado!\n\nPaciente: %s\nTelefone: %s\nServiço: %s (%s)\nUrgência: %d/10\nPreferência: %s %s\nID: %s",
		patient.Name,
		patient.Phone.Masked(),
		booking.Service,
		booking.Specialty,
		booking.Urgency,
		booking.Date,
		booking.Time,
		booking.ID,
	)

	notifier := u.notifier
	async.Dispatch(ctx, func(ctx context.Context) error {
		return notifier.Notify(ctx, summary)
	})
}

func truncateIssue(message string) string {
	runes := []rune(message)
	if len(runes) <= issueCaptureLimit {
		return message
	}
	return string(runes[:issueCaptureLimit])
}
