package usecase

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"

	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
)

//go:embed prompt.tmpl
var promptTemplate string

// historyWindow is how many of the recent turns are rendered into the
// prompt. The repository may return more; only the tail is used.
const historyWindow = 3

// PromptBuilder renders the full generation prompt for one turn. The
// persona and clinic data are fixed at construction; everything else
// comes from the session and message, so the same inputs always produce
// the same prompt.
type PromptBuilder struct {
	persona string
	clinic  *model.Clinic
	tmpl    *template.Template
}

type promptData struct {
	Persona        string
	Clinic         *model.Clinic
	State          types.ConversationState
	TurnNumber     int
	KnownPatient   bool
	Facts          model.CollectedFacts
	History        []*model.Turn
	Message        string
	MissingSummary string
}

func NewPromptBuilder(persona string, clinic *model.Clinic) (*PromptBuilder, error) {
	tmpl, err := template.New("turn").Funcs(template.FuncMap{
		"join": strings.Join,
		"orDash": func(s string) string {
			if s == "" {
				return "-"
			}
			return s
		},
	}).Parse(promptTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse prompt template")
	}

	return &PromptBuilder{
		persona: persona,
		clinic:  clinic,
		tmpl:    tmpl,
	}, nil
}

// Build assembles the prompt for the current turn. history must be in
// chronological order, oldest first.
func (b *PromptBuilder) Build(sess *model.Session, message string, history []*model.Turn) (string, error) {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	data := promptData{
		Persona:        b.persona,
		Clinic:         b.clinic,
		State:          sess.State,
		TurnNumber:     sess.TurnCount,
		KnownPatient:   len(history) > 0,
		Facts:          sess.Facts,
		History:        history,
		Message:        message,
		MissingSummary: missingSummary(sess),
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render prompt",
			goerr.V("phone", sess.Phone.Masked()))
	}
	return buf.String(), nil
}

// missingSummary lists the facts still to be collected, in the order
// they should be asked for. Date and time only count once the
// conversation reaches scheduling.
func missingSummary(sess *model.Session) string {
	var missing []string
	if sess.Facts.Name == "" {
		missing = append(missing, "nome completo")
	}
	if sess.Facts.Service == "" {
		missing = append(missing, "motivo específico da consulta")
	}
	if sess.State == types.StateScheduling {
		if sess.Facts.DatePreference == "" {
			missing = append(missing, "data preferida")
		}
		if sess.Facts.TimePreference == "" {
			missing = append(missing, "horário preferido")
		}
	}
	if len(missing) == 0 {
		return "Todas coletadas - pode confirmar agendamento"
	}
	return strings.Join(missing, ", ")
}
