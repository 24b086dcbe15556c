package llm_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/darkking4096/Agente-IA/pkg/service/llm"
)

func TestCapSentences(t *testing.T) {
	cases := []struct {
		title string
		text  string
		n     int
		want  string
	}{
		{
			title: "short reply is untouched",
			text:  "Olá! Como posso ajudar?",
			n:     3,
			want:  "Olá! Como posso ajudar?",
		},
		{
			title: "long reply is cut to three sentences",
			text:  "Primeira frase. Segunda frase. Terceira frase. Quarta frase. Quinta frase.",
			n:     3,
			want:  "Primeira frase. Segunda frase. Terceira frase.",
		},
		{
			title: "exactly at the limit",
			text:  "Uma. Duas. Três.",
			n:     3,
			want:  "Uma. Duas. Três.",
		},
		{
			title: "zero limit disables the cap",
			text:  "Uma. Duas. Três. Quatro.",
			n:     0,
			want:  "Uma. Duas. Três. Quatro.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			gt.Value(t, llm.CapSentences(tc.text, tc.n)).Equal(tc.want)
		})
	}
}

func TestNewRequiresClient(t *testing.T) {
	_, err := llm.New(nil)
	gt.Error(t, err)
}

func TestDisabledAlwaysFails(t *testing.T) {
	gen := llm.NewDisabled()
	_, err := gen.Generate(context.Background(), "qualquer prompt")
	gt.Error(t, err)
}
