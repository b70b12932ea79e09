// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hostel_pms/internal/app"
	"hostel_pms/internal/domain"
)

type Handlers struct {
	Store  domain.StateStore
	Auth   *app.AuthService
	Desk   *app.FrontDesk
	Office *app.BackOffice
	AI     *app.Assistant
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/initial-data", h.initialData)

	s.mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Get("/me", h.me)
		r.Post("/logout", h.logout)
	})
	h.mountFrontDesk(s.mux)
	h.mountBackOffice(s.mux)
	h.mountManagement(s.mux)
	h.mountAI(s.mux)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// fail maps a service error onto its problem response. Gateway and unknown
// failures never leak their detail to the client.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrBadCredentials):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "Invalid email or password")
	case errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid or expired token")
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrGateway):
		writeProblem(w, http.StatusInternalServerError, "AI service error", "")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// reply writes v, or the problem for err.
func reply(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, status, v)
}

func noContent(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body into dst. Malformed, empty or oversized bodies
// are validation errors.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", domain.ErrValidation)
		}
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// decodeOptional is decode for endpoints whose body may be omitted.
func decodeOptional(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// byID adapts a service call that only needs the {id} path parameter.
func byID[T any](fn func(ctx context.Context, id string) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := fn(r.Context(), chi.URLParam(r, "id"))
		reply(w, r, http.StatusOK, out, err)
	}
}

// withBody adapts a service call that takes the decoded request body.
func withBody[In, Out any](status int, fn func(ctx context.Context, in In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := decode(r, &in); err != nil {
			fail(w, r, err)
			return
		}
		out, err := fn(r.Context(), in)
		reply(w, r, status, out, err)
	}
}

func intParam(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrValidation, name)
	}
	return v, nil
}

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

type initialData struct {
	DB   domain.DBState `json:"db"`
	Chat struct {
		Conversations []domain.ChatConversation `json:"conversations"`
		Messages      []domain.ChatMessage      `json:"messages"`
	} `json:"chat"`
	Notifications []any  `json:"notifications"`
	AIMode        string `json:"aiMode"`
}

func (h *Handlers) initialData(w http.ResponseWriter, r *http.Request) {
	snap := h.Store.Snapshot()
	out := initialData{DB: snap, Notifications: []any{}, AIMode: h.AI.Mode()}
	out.Chat.Conversations = snap.ChatConversations
	out.Chat.Messages = snap.ChatMessages

	etag, body := calcETagAndBody(out)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write initial-data body")
	}
}

// ---- auth ----

type loginRequest struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	res, err := h.Auth.Login(r.Context(), in.Email, in.Pass)
	reply(w, r, http.StatusOK, res, err)
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	token := bearer(r)
	if token == "" {
		fail(w, r, domain.ErrUnauthorized)
		return
	}
	p, sess, err := h.Auth.Resolve(r.Context(), token)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": p.User(), "kind": p.Kind, "issuedAt": sess.IssuedAt})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	token := bearer(r)
	if token == "" {
		fail(w, r, domain.ErrUnauthorized)
		return
	}
	noContent(w, r, h.Auth.Logout(r.Context(), token))
}
