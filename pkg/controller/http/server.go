package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	"github.com/darkking4096/Agente-IA/pkg/domain/interfaces"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
	"github.com/darkking4096/Agente-IA/pkg/usecase"
	"github.com/darkking4096/Agente-IA/pkg/utils/errutil"
	"github.com/darkking4096/Agente-IA/pkg/utils/logging"
	"github.com/darkking4096/Agente-IA/pkg/utils/safe"
)

type Server struct {
	router    *chi.Mux
	uc        *usecase.UseCases
	messenger interfaces.Messenger
}

type Options func(*Server)

// WithMessenger sets the outbound channel used to deliver replies back
// to the caller. Without it, replies are only returned in the webhook
// response body.
func WithMessenger(m interfaces.Messenger) Options {
	return func(s *Server) {
		s.messenger = m
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)
	r.Post("/hooks/whatsapp", s.webhookHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.statusHandler)
		r.Get("/patient/{phone}", s.patientHandler)
		r.Get("/bookings", s.bookingsHandler)
		r.Post("/reset/{phone}", s.resetHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	repo := s.uc.Repository()

	patients, err := repo.Patient().Count(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}
	bookings, err := repo.Booking().Count(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}
	turns, err := repo.Turn().Count(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]int{
		"active_sessions": s.uc.Store().Len(),
		"patients":        patients,
		"bookings":        bookings,
		"turns":           turns,
	})
}

func (s *Server) patientHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	phone := types.NormalizePhone(chi.URLParam(r, "phone"))
	if err := phone.Validate(); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	patient, err := s.uc.Repository().Patient().Get(ctx, phone)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)
		return
	}

	resp := map[string]any{
		"id":         patient.ID,
		"phone":      patient.Phone.Masked(),
		"name":       patient.Name,
		"created_at": patient.CreatedAt,
	}
	if sess, ok := s.uc.Store().Peek(phone); ok {
		resp["session"] = map[string]any{
			"state":      sess.State,
			"turn_count": sess.TurnCount,
			"facts":      sess.Facts,
		}
	}

	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) bookingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookings, err := s.uc.Repository().Booking().List(ctx, 50)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"bookings": bookings})
}

func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	phone := types.NormalizePhone(chi.URLParam(r, "phone"))
	if err := phone.Validate(); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	removed := s.uc.ResetSession(phone)
	respondJSON(w, r, http.StatusOK, map[string]any{"reset": removed})
}
