package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hostel_pms/internal/domain"
)

// mountManagement serves the rate manager, channel connections, site and
// property settings and the marketing calendar.
func (h *Handlers) mountManagement(m chi.Router) {
	m.Route("/rate-plans", func(r chi.Router) {
		r.Put("/", withBody(http.StatusOK, h.Office.SaveRatePlan))
		r.Delete("/{id}", deleteByID(h.Office.DeleteRatePlan))
	})
	m.Route("/add-ons", func(r chi.Router) {
		r.Put("/", withBody(http.StatusOK, h.Office.SaveAddOn))
		r.Delete("/{id}", deleteByID(h.Office.DeleteAddOn))
	})
	m.Route("/restrictions", func(r chi.Router) {
		r.Put("/", withBody(http.StatusOK, h.Office.SaveRestriction))
		r.Delete("/{id}", deleteByID(h.Office.DeleteRestriction))
	})
	m.Route("/ota/{platform}", func(r chi.Router) {
		r.Post("/connect", h.connectOTA)
		r.Post("/disconnect", func(w http.ResponseWriter, r *http.Request) {
			out, err := h.Office.DisconnectOTA(r.Context(), chi.URLParam(r, "platform"))
			reply(w, r, http.StatusOK, out, err)
		})
	})
	m.Put("/properties/{id}", h.updateProperty)
	m.Route("/settings", func(r chi.Router) {
		r.Put("/facilities", h.saveFacilities)
		r.Put("/{key}", h.saveSetting)
	})
	m.Route("/marketing", func(r chi.Router) {
		r.Post("/posts", withBody(http.StatusCreated, h.Office.SchedulePost))
		r.Delete("/posts/{id}", deleteByID(h.Office.DeletePost))
		r.Post("/media", withBody(http.StatusCreated, h.Office.AddMediaAsset))
		r.Delete("/media/{id}", deleteByID(h.Office.DeleteMediaAsset))
	})
}

func (h *Handlers) connectOTA(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PropertyID string `json:"propertyId"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.ConnectOTA(r.Context(), chi.URLParam(r, "platform"), in.PropertyID)
	reply(w, r, http.StatusOK, out, err)
}

func (h *Handlers) updateProperty(w http.ResponseWriter, r *http.Request) {
	var in domain.PropertyInfo
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.UpdateProperty(r.Context(), chi.URLParam(r, "id"), in)
	reply(w, r, http.StatusOK, out, err)
}

func (h *Handlers) saveSetting(w http.ResponseWriter, r *http.Request) {
	var doc json.RawMessage
	if err := decode(r, &doc); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.SaveSetting(r.Context(), domain.Setting(chi.URLParam(r, "key")), doc)
	reply(w, r, http.StatusOK, out, err)
}

func (h *Handlers) saveFacilities(w http.ResponseWriter, r *http.Request) {
	var doc json.RawMessage
	if err := decode(r, &doc); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.SaveFacilities(r.Context(), doc)
	reply(w, r, http.StatusOK, out, err)
}

// saveStaffDocument serves PUT /staff/{id}/<document> for the per-staff
// settings documents.
func (h *Handlers) saveStaffDocument(key domain.Setting) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc json.RawMessage
		if err := decode(r, &doc); err != nil {
			fail(w, r, err)
			return
		}
		out, err := h.Office.SaveStaffDocument(r.Context(), key, chi.URLParam(r, "id"), doc)
		reply(w, r, http.StatusOK, out, err)
	}
}
