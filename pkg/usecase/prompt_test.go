package usecase_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
	"github.com/darkking4096/Agente-IA/pkg/usecase"
)

const testPersona = "Você é Fernanda, assistente virtual acolhedora da clínica odontológica."

func TestPromptContainsAllSections(t *testing.T) {
	builder, err := usecase.NewPromptBuilder(testPersona, testClinic())
	gt.NoError(t, err).Required()

	sess := model.NewSession("5511988887777")
	sess.State = types.StateCollecting
	sess.TurnCount = 2
	sess.Facts.Name = "Maria Silva"
	sess.Facts.Issue = "dente doendo"
	sess.Facts.Urgency = 6

	history := []*model.Turn{
		{UserText: "oi", BotText: "Olá! Como posso ajudar?"},
	}

	prompt, err := builder.Build(sess, "queria marcar uma limpeza", history)
	gt.NoError(t, err).Required()

	for _, want := range []string{
		testPersona,
		"=== DADOS DA CLÍNICA ===",
		"Clínica Sorriso & Saúde",
		"=== BASE DE CONHECIMENTO ===",
		"Triagem de dor",
		"=== CONTEXTO DA CONVERSA ===",
		"Estado atual: COLLECTING",
		"Mensagem número: 2",
		"Paciente já conhecido: Sim",
		"=== INFORMAÇÕES JÁ COLETADAS ===",
		"Maria Silva",
		"=== HISTÓRICO RECENTE ===",
		"Paciente: oi",
		"Fernanda: Olá! Como posso ajudar?",
		"=== MENSAGEM ATUAL ===",
		"Paciente: queria marcar uma limpeza",
		"=== INSTRUÇÕES CRÍTICAS ===",
	} {
		gt.Bool(t, strings.Contains(prompt, want)).True()
	}
}

func TestPromptFirstInteractionMarker(t *testing.T) {
	builder, err := usecase.NewPromptBuilder(testPersona, testClinic())
	gt.NoError(t, err).Required()

	sess := model.NewSession("5511988887777")
	sess.TurnCount = 1

	prompt, err := builder.Build(sess, "olá", nil)
	gt.NoError(t, err).Required()

	gt.Bool(t, strings.Contains(prompt, "Primeira interação com este paciente")).True()
	gt.Bool(t, strings.Contains(prompt, "Paciente já conhecido: Não")).True()
}

func TestPromptRendersOnlyLastThreeTurns(t *testing.T) {
	builder, err := usecase.NewPromptBuilder(testPersona, testClinic())
	gt.NoError(t, err).Required()

	sess := model.NewSession("5511988887777")
	history := []*model.Turn{
		{UserText: "primeira", BotText: "r1"},
		{UserText: "segunda", BotText: "r2"},
		{UserText: "terceira", BotText: "r3"},
		{UserText: "quarta", BotText: "r4"},
	}

	prompt, err := builder.Build(sess, "olá", history)
	gt.NoError(t, err).Required()

	gt.Bool(t, strings.Contains(prompt, "Paciente: primeira")).False()
	gt.Bool(t, strings.Contains(prompt, "Paciente: segunda")).True()
	gt.Bool(t, strings.Contains(prompt, "Paciente: quarta")).True()
}

func TestPromptMissingFacts(t *testing.T) {
	builder, err := usecase.NewPromptBuilder(testPersona, testClinic())
	gt.NoError(t, err).Required()

	t.Run("name and service missing", func(t *testing.T) {
		sess := model.NewSession("5511988887777")
		prompt, err := builder.Build(sess, "olá", nil)
		gt.NoError(t, err).Required()

		gt.Bool(t, strings.Contains(prompt, "nome completo")).True()
		gt.Bool(t, strings.Contains(prompt, "motivo específico da consulta")).True()
		gt.Bool(t, strings.Contains(prompt, "data preferida")).False()
	})

	t.Run("date and time appear only in SCHEDULING", func(t *testing.T) {
		sess := model.NewSession("5511988887777")
		sess.State = types.StateScheduling
		sess.Facts.Name = "Maria Silva"
		sess.Facts.Service = "Limpeza"

		prompt, err := builder.Build(sess, "quero marcar", nil)
		gt.NoError(t, err).Required()

		gt.Bool(t, strings.Contains(prompt, "data preferida")).True()
		gt.Bool(t, strings.Contains(prompt, "horário preferido")).True()
		gt.Bool(t, strings.Contains(prompt, "nome completo")).False()
	})

	t.Run("everything collected", func(t *testing.T) {
		sess := model.NewSession("5511988887777")
		sess.State = types.StateConfirming
		sess.Facts.Name = "Maria Silva"
		sess.Facts.Service = "Limpeza"
		sess.Facts.DatePreference = "amanhã"
		sess.Facts.TimePreference = "14:30"

		prompt, err := builder.Build(sess, "pode ser", nil)
		gt.NoError(t, err).Required()

		gt.Bool(t, strings.Contains(prompt, "Todas coletadas - pode confirmar agendamento")).True()
	})
}

func TestPromptIsDeterministic(t *testing.T) {
	builder, err := usecase.NewPromptBuilder(testPersona, testClinic())
	gt.NoError(t, err).Required()

	sess := model.NewSession("5511988887777")
	sess.Facts.Name = "Maria Silva"

	first, err := builder.Build(sess, "olá", nil)
	gt.NoError(t, err).Required()
	second, err := builder.Build(sess, "olá", nil)
	gt.NoError(t, err).Required()

	gt.Value(t, first).Equal(second)
}
