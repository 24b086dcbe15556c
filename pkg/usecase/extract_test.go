package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/usecase"
)

func testClinic() *model.Clinic {
	return &model.Clinic{
		Name: "Clínica Sorriso & Saúde",
		Services: []model.KnowledgeEntry{
			{
				Service:     "Triagem de dor",
				Specialty:   "Endodontia",
				Keywords:    []string{"dor", "urgente", "emergência"},
				Urgency:     "Alto",
				DurationMin: 40,
			},
			{
				Service:     "Limpeza",
				Specialty:   "Clínica Geral",
				Keywords:    []string{"limpeza", "profilaxia"},
				Urgency:     "Baixo",
				DurationMin: 45,
			},
		},
	}
}

func TestExtractName(t *testing.T) {
	clinic := testClinic()

	cases := []struct {
		title   string
		message string
		want    string
	}{
		{"self introduction", "Oi, meu nome é Maria Silva", "Maria Silva"},
		{"me chamo", "me chamo João Pedro, tudo bem?", "João Pedro"},
		{"sou with article", "sou a Ana", "Ana"},
		{"leading capitalized name", "Carlos, preciso de ajuda", "Carlos"},
		{"no name present", "preciso de uma consulta", ""},
		{"lowercase word is not a name", "olá tudo bem", ""},
	}

	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			sess := model.NewSession("5511988887777")
			delta := usecase.ExtractFacts(tc.message, sess, clinic)
			gt.Value(t, delta.Name).Equal(tc.want)
		})
	}
}

func TestExtractNameSkippedWhenKnown(t *testing.T) {
	sess := model.NewSession("5511988887777")
	sess.Facts.Name = "Maria Silva"

	delta := usecase.ExtractFacts("meu nome é Outra Pessoa", sess, testClinic())
	gt.Value(t, delta.Name).Equal("")
}

func TestExtractUrgencyTiers(t *testing.T) {
	clinic := testClinic()

	cases := []struct {
		title   string
		message string
		want    int
	}{
		{"unbearable pain", "a dor está insuportável", 10},
		{"emergency", "é uma emergência", 10},
		{"strong pain", "estou com muita dor", 8},
		{"plain pain", "meu dente está doendo", 6},
		{"discomfort", "sinto um desconforto", 3},
		{"no urgency signal", "quero fazer uma limpeza", 0},
	}

	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			sess := model.NewSession("5511988887777")
			delta := usecase.ExtractFacts(tc.message, sess, clinic)
			gt.Value(t, delta.Urgency).Equal(tc.want)
		})
	}
}

func TestExtractUrgencyIsIdempotent(t *testing.T) {
	clinic := testClinic()
	sess := model.NewSession("5511988887777")

	first := usecase.ExtractFacts("estou com muita dor", sess, clinic)
	sess.Facts.Apply(first)
	second := usecase.ExtractFacts("estou com muita dor", sess, clinic)
	sess.Facts.Apply(second)

	gt.Value(t, sess.Facts.Urgency).Equal(8)
}

func TestExtractServiceFromKnowledgeTable(t *testing.T) {
	clinic := testClinic()
	sess := model.NewSession("5511988887777")

	delta := usecase.ExtractFacts("queria marcar uma limpeza", sess, clinic)
	gt.Value(t, delta.Service).Equal("Limpeza")
	gt.Value(t, delta.Specialty).Equal("Clínica Geral")
}

func TestExtractServiceFirstMatchWins(t *testing.T) {
	clinic := testClinic()
	sess := model.NewSession("5511988887777")

	// Both entries match; the first declared row takes it.
	delta := usecase.ExtractFacts("dor depois da limpeza", sess, clinic)
	gt.Value(t, delta.Service).Equal("Triagem de dor")
	gt.Value(t, delta.Specialty).Equal("Endodontia")
}

func TestExtractDatePreference(t *testing.T) {
	clinic := testClinic()

	cases := []struct {
		message string
		want    string
	}{
		{"pode ser hoje?", "hoje"},
		{"amanhã de manhã", "amanhã"},
		{"qualquer dia essa semana", "esta semana"},
		{"sem preferência", ""},
	}

	for _, tc := range cases {
		sess := model.NewSession("5511988887777")
		delta := usecase.ExtractFacts(tc.message, sess, clinic)
		gt.Value(t, delta.DatePreference).Equal(tc.want)
	}
}

func TestExtractTimeNormalization(t *testing.T) {
	clinic := testClinic()

	cases := []struct {
		message string
		want    string
	}{
		{"pode ser às 14h", "14:00"},
		{"prefiro 14:30", "14:30"},
		{"às 9h30 está bom", "09:30"},
		{"às 25h não existe", ""},
		{"nenhum horário", ""},
	}

	for _, tc := range cases {
		sess := model.NewSession("5511988887777")
		delta := usecase.ExtractFacts(tc.message, sess, clinic)
		gt.Value(t, delta.TimePreference).Equal(tc.want)
	}
}

func TestExtractBookingIntentDefaultsService(t *testing.T) {
	clinic := testClinic()
	sess := model.NewSession("5511988887777")

	delta := usecase.ExtractFacts("quero agendar", sess, clinic)
	gt.Bool(t, delta.BookingIntent).True()
	gt.Value(t, delta.Service).Equal(usecase.DefaultService)
	gt.Value(t, delta.Specialty).Equal(usecase.DefaultSpecialty)
}

func TestExtractBookingIntentKeepsDetectedService(t *testing.T) {
	clinic := testClinic()
	sess := model.NewSession("5511988887777")

	delta := usecase.ExtractFacts("quero agendar uma limpeza", sess, clinic)
	gt.Bool(t, delta.BookingIntent).True()
	gt.Value(t, delta.Service).Equal("Limpeza")
	gt.Value(t, delta.Specialty).Equal("Clínica Geral")
}

func TestExtractBookingIntentDoesNotOverwriteKnownService(t *testing.T) {
	clinic := testClinic()
	sess := model.NewSession("5511988887777")
	sess.Facts.Service = "Triagem de dor"
	sess.Facts.Specialty = "Endodontia"

	delta := usecase.ExtractFacts("quero agendar", sess, clinic)
	gt.Bool(t, delta.BookingIntent).True()
	gt.Value(t, delta.Service).Equal("")
	gt.Value(t, delta.Specialty).Equal("")
}

func TestExtractContactNumber(t *testing.T) {
	clinic := testClinic()
	sess := model.NewSession("5511988887777")

	delta := usecase.ExtractFacts("meu contato é (11) 98765-4321", sess, clinic)
	gt.Value(t, delta.Contact).Equal("11987654321")
}

func TestExtractNothingIsNotAnError(t *testing.T) {
	clinic := testClinic()
	sess := model.NewSession("5511988887777")

	delta := usecase.ExtractFacts("tudo bem?", sess, clinic)
	gt.Bool(t, delta.Empty()).True()
}
