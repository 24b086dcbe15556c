package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/darkking4096/Agente-IA/pkg/domain/types"
	"github.com/darkking4096/Agente-IA/pkg/utils/errutil"
	"github.com/darkking4096/Agente-IA/pkg/utils/logging"
)

// webhookPayload accepts both the flat test shape {"from": ..., "text": ...}
// and the Evolution API messages.upsert event.
type webhookPayload struct {
	From string `json:"from"`
	Text string `json:"text"`

	Event string `json:"event"`
	Data  struct {
		Key struct {
			RemoteJid string `json:"remoteJid"`
			FromMe    bool   `json:"fromMe"`
		} `json:"key"`
		PushName string `json:"pushName"`
		Message  struct {
			Conversation        string `json:"conversation"`
			ExtendedTextMessage struct {
				Text string `json:"text"`
			} `json:"extendedTextMessage"`
		} `json:"message"`
	} `json:"data"`
}

// resolve picks the caller identity and message text out of whichever
// shape was posted. ok is false for events that carry no inbound user
// message, e.g. our own outbound messages echoed back.
func (p *webhookPayload) resolve() (phone types.Phone, text string, ok bool) {
	if p.From != "" {
		return types.NormalizePhone(p.From), p.Text, true
	}

	if p.Data.Key.FromMe {
		return "", "", false
	}

	jid := p.Data.Key.RemoteJid
	if i := strings.IndexByte(jid, '@'); i >= 0 {
		jid = jid[:i]
	}
	text = p.Data.Message.Conversation
	if text == "" {
		text = p.Data.Message.ExtendedTextMessage.Text
	}
	if jid == "" || text == "" {
		return "", "", false
	}

	return types.NormalizePhone(jid), text, true
}

func (s *Server) webhookHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode webhook payload"), http.StatusBadRequest)
		return
	}

	phone, text, ok := payload.resolve()
	if !ok {
		// Nothing to process, but the webhook source expects a 200.
		respondJSON(w, r, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}
	if err := phone.Validate(); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(text) == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("empty message text"), http.StatusBadRequest)
		return
	}

	result, err := s.uc.ProcessTurn(ctx, phone, text)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	if s.messenger != nil {
		if err := s.messenger.SendText(ctx, phone, result.Reply); err != nil {
			// The turn already ran and is persisted; delivery failure is
			// reported to the operator, not to the webhook source.
			logging.From(ctx).Error("failed to deliver reply",
				"phone", phone.Masked(), "error", err)
		}
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"status": "success",
		"reply":  result.Reply,
		"state":  result.State,
	})
}
