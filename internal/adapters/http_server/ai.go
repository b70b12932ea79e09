package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hostel_pms/internal/app"
	"hostel_pms/internal/domain"
)

func (h *Handlers) mountAI(m chi.Router) {
	m.Route("/ai", func(r chi.Router) {
		r.Get("/operations", h.aiOperations)
		r.Get("/invocations", h.aiInvocations)
		r.Post("/generate-image", h.generateImage)
		r.Post("/concierge/{guestId}/message", h.concierge)
		r.Post("/synapse/command", h.synapse)
		r.Post("/{operation}", h.runOperation)
	})
}

func (h *Handlers) aiOperations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"mode": h.AI.Mode(), "operations": app.Operations()})
}

func (h *Handlers) aiInvocations(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			fail(w, r, fmt.Errorf("%w: limit must be a positive number", domain.ErrValidation))
			return
		}
		limit = min(n, 500)
	}
	out, err := h.AI.Invocations(r.Context(), limit)
	if out == nil {
		out = []domain.Invocation{}
	}
	reply(w, r, http.StatusOK, out, err)
}

// runOperation forwards the optional JSON body as operation arguments and
// returns the model's JSON untouched.
func (h *Handlers) runOperation(w http.ResponseWriter, r *http.Request) {
	args := app.Args{}
	if err := decodeOptional(r, &args); err != nil {
		fail(w, r, err)
		return
	}
	raw, err := h.AI.Run(r.Context(), chi.URLParam(r, "operation"), args)
	reply(w, r, http.StatusOK, raw, err)
}

func (h *Handlers) generateImage(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Prompt      string `json:"prompt"`
		AspectRatio string `json:"aspectRatio"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	img, err := h.AI.GenerateImage(r.Context(), in.Prompt, in.AspectRatio)
	reply(w, r, http.StatusOK, img, err)
}

func (h *Handlers) concierge(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Message string `json:"message"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.AI.Concierge(r.Context(), chi.URLParam(r, "guestId"), in.Message)
	reply(w, r, http.StatusOK, out, err)
}

func (h *Handlers) synapse(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Command  string `json:"command"`
		UserID   string `json:"userId"`
		UserName string `json:"userName"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.AI.Synapse(r.Context(), in.Command, in.UserID, in.UserName)
	reply(w, r, http.StatusOK, out, err)
}
