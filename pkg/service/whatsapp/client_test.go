package whatsapp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/darkking4096/Agente-IA/pkg/service/whatsapp"
)

func TestSendText(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client, err := whatsapp.New(srv.URL, "secret-key", "fernanda")
	gt.NoError(t, err).Required()

	err = client.SendText(context.Background(), "5511988887777", "Olá! Como posso ajudar?")
	gt.NoError(t, err).Required()

	gt.Value(t, gotPath).Equal("/message/sendText/fernanda")
	gt.Value(t, gotAPIKey).Equal("secret-key")
	gt.Value(t, gotBody["number"]).Equal("5511988887777")
	gt.Value(t, gotBody["text"]).Equal("Olá! Como posso ajudar?")
}

func TestSendTextErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "instance not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := whatsapp.New(srv.URL, "secret-key", "fernanda")
	gt.NoError(t, err).Required()

	err = client.SendText(context.Background(), "5511988887777", "olá")
	gt.Error(t, err)
}

func TestDevModeSuppressesDelivery(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client, err := whatsapp.New(srv.URL, "secret-key", "fernanda", whatsapp.WithDevMode(true))
	gt.NoError(t, err).Required()

	gt.NoError(t, client.SendText(context.Background(), "5511988887777", "olá")).Required()
	gt.Bool(t, called).False()
}

func TestNewValidation(t *testing.T) {
	_, err := whatsapp.New("", "key", "fernanda")
	gt.Error(t, err)

	// Dev mode works without an endpoint.
	_, err = whatsapp.New("", "", "", whatsapp.WithDevMode(true))
	gt.NoError(t, err)
}
