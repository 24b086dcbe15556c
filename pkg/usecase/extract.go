package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
)

// Name detection: an explicit self-introduction wins over the leading
// capitalized word heuristic. Triggers are case-insensitive but the
// captured name must be capitalized.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:meu nome é|me chamo|sou(?: [oa])?)\s+([A-ZÀ-Ú][a-zà-ú]+(?:\s+[A-ZÀ-Ú][a-zà-ú]+)*)`),
	regexp.MustCompile(`^([A-ZÀ-Ú][a-zà-ú]+(?:\s+[A-ZÀ-Ú][a-zà-ú]+)*)[,.\s]`),
}

// Loose digit grouping tolerant of country code, area parentheses and
// separators, e.g. "+55 (11) 98765-4321".
var contactPattern = regexp.MustCompile(`(?:\+?55\s?)?(?:\(?\d{2}\)?\s?)?\d{4,5}[-\s]?\d{4}`)

// timePattern matches "14h", "14:30", "9h30"
var timePattern = regexp.MustCompile(`(\d{1,2})[h:](\d{2})?`)

// urgencyTiers is scanned in declaration order; the first tier with a
// matching phrase wins, so broader phrases ("dor") must come after the
// more severe ones that contain them ("muita dor").
var urgencyTiers = []struct {
	Level   int
	Phrases []string
}{
	{10, []string{"insuportável", "não aguento", "emergência"}},
	{8, []string{"muita dor", "bastante dor", "doendo muito"}},
	{6, []string{"dor", "doendo", "incômodo"}},
	{3, []string{"desconforto", "sensível"}},
}

// bookingIntentPhrases fast-track the state machine and default the
// requested service when nothing more specific was detected.
var bookingIntentPhrases = []string{
	"agendar", "marcar", "agendamento", "consulta",
	"avaliacao", "avaliação", "operar", "cirurgia",
	"quero pra hoje", "quero para hoje",
}

const (
	// DefaultService is assumed when booking intent arrives without a
	// recognizable service keyword.
	DefaultService = "Consulta"
	// DefaultSpecialty backs DefaultService
	DefaultSpecialty = "Clínica Geral"
)

// HasBookingIntent reports whether the message contains a booking-intent
// phrase. The input must already be lower-cased.
func HasBookingIntent(lowered string) bool {
	for _, phrase := range bookingIntentPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// ExtractFacts scans one message for structured facts. It reads the
// session but never mutates it; the caller applies the returned delta.
// Every detection is independent and absence of a fact is a valid
// outcome, never an error.
func ExtractFacts(message string, sess *model.Session, clinic *model.Clinic) model.FactDelta {
	var delta model.FactDelta
	lowered := strings.ToLower(message)

	// Name, only while unknown. First matching pattern wins.
	if sess.Facts.Name == "" {
		for _, pattern := range namePatterns {
			if m := pattern.FindStringSubmatch(message); m != nil {
				delta.Name = strings.TrimSpace(m[1])
				break
			}
		}
	}

	if m := contactPattern.FindString(message); m != "" {
		delta.Contact = types.NormalizePhone(m).String()
	}

	// Highest-severity tier wins; one urgency value per turn at most.
	for _, tier := range urgencyTiers {
		if containsAny(lowered, tier.Phrases) {
			delta.Urgency = tier.Level
			break
		}
	}

	if entry, ok := clinic.FindService(message); ok {
		delta.Service = entry.Service
		delta.Specialty = entry.Specialty
	}

	switch {
	case strings.Contains(lowered, "hoje"):
		delta.DatePreference = "hoje"
	case strings.Contains(lowered, "amanhã"):
		delta.DatePreference = "amanhã"
	case strings.Contains(lowered, "semana"):
		delta.DatePreference = "esta semana"
	}

	if m := timePattern.FindStringSubmatch(message); m != nil {
		if t, ok := normalizeTime(m[1], m[2]); ok {
			delta.TimePreference = t
		}
	}

	if HasBookingIntent(lowered) {
		delta.BookingIntent = true
		if delta.Service == "" && sess.Facts.Service == "" {
			delta.Service = DefaultService
		}
		if delta.Specialty == "" && sess.Facts.Specialty == "" {
			delta.Specialty = DefaultSpecialty
		}
	}

	return delta
}

func containsAny(lowered string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}

// normalizeTime renders an H[:MM] capture as zero-padded HH:MM, minute
// defaulting to 00. Out-of-range values are rejected (the fact stays
// unset for the turn).
func normalizeTime(hourStr, minuteStr string) (string, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour > 23 {
		return "", false
	}
	if minuteStr == "" {
		minuteStr = "00"
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}
