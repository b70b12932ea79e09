package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hostel_pms/internal/app"
	"hostel_pms/internal/domain"
)

func (h *Handlers) mountFrontDesk(m chi.Router) {
	m.Route("/rooms", func(r chi.Router) {
		r.Post("/", h.addRoom)
		r.Put("/{id}", h.updateRoom)
		r.Put("/{id}/status", h.setRoomStatus)
		r.Put("/{id}/beds", h.setBeds)
		r.Put("/{id}/controls", h.setControls)
		r.Post("/{id}/beds/{bed}/assign", h.assignBed)
	})
	m.Route("/guests", func(r chi.Router) {
		r.Post("/", h.addGuest)
		r.Put("/{id}", h.updateGuest)
		r.Put("/{id}/itinerary", h.setItinerary)
	})
	m.Route("/bookings", func(r chi.Router) {
		r.Post("/", h.addBooking)
		r.Post("/new-guest", h.newGuestBooking)
		r.Put("/{id}", h.updateBooking)
		r.Post("/{id}/check-in", byID(h.Desk.CheckIn))
		r.Post("/{id}/check-out", byID(h.Desk.CheckOut))
		r.Post("/{id}/service-requests", h.requestService)
		r.Post("/{id}/room-service", h.roomServiceOrder)
		r.Post("/{id}/pay-balance", byID(h.Desk.PayBalance))
		r.Post("/{id}/acknowledge-rules", byID(h.Desk.AcknowledgeRules))
		r.Post("/{id}/online-checkin", h.onlineCheckin)
	})
	m.Route("/reviews", func(r chi.Router) {
		r.Post("/", h.addReview)
		r.Post("/{id}/approve", byID(h.Desk.ApproveReview))
		r.Post("/{id}/reject", byID(h.Desk.RejectReview))
	})
}

// ---- rooms ----

func (h *Handlers) addRoom(w http.ResponseWriter, r *http.Request) {
	var in domain.Room
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Desk.AddRoom(r.Context(), in)
	reply(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	var in domain.Room
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Desk.UpdateRoom(r.Context(), id, in)
	reply(w, r, http.StatusOK, out, err)
}

func (h *Handlers) setRoomStatus(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	var in struct {
		Status domain.RoomStatus `json:"status"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Desk.SetRoomStatus(r.Context(), id, in.Status)
	reply(w, r, http.StatusOK, out, err)
}

func (h *Handlers) setBeds(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	var in struct {
		Beds []domain.Bed `json:"beds"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Desk.SetBeds(r.Context(), id, in.Beds)
	reply(w, r, http.StatusOK, out, err)
}

func (h *Handlers) setControls(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	var in domain.RoomControls
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Desk.SetControls(r.Context(), id, in)
	reply(w, r, http.StatusOK, out, err)
}

func (h *Handlers) assignBed(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	bed, err := intParam(r, "bed")
	if err != nil {
		fail(w, r, err)
		return
	}
	var in struct {
		BookingID string `json:"bookingId"`
	}
	if err := decodeOptional(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Desk.AssignBed(r.Context(), id, bed, in.BookingID)
	reply(w, r, http.StatusOK, out, err)
}

// ---- guests ----

func (h *Handlers) addGuest(w http.ResponseWriter, r *http.Request) {
	var in domain.Guest
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Desk.AddGuest(r.Context(), in)
	reply(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) updateGuest(w http.ResponseWriter, r *http.Request) {
	var in domain.Guest
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Desk.UpdateGuest(r.Context(), chi.URLParam(r, "id"), in)
	reply(w, r, http.StatusOK, out, err)
}

func (h *Handlers) setItinerary(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Itinerary []domain.ItineraryItem `json:"itinerary"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Desk.SetItinerary(r.Context(), chi.URLParam(r, "id"), in.Itinerary)
	reply(w, r, http.StatusOK, out, err)
}

// ---- bookings ----

func (h *Handlers) addBooking(w http.ResponseWriter, r *http.Request) {
	var in domain.Booking
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Desk.AddBooking(r.Context(), in)
	reply(w, r, http.StatusCreated, out, err)
}

type newGuestBooking struct {
	Booking domain.BookingDraft `json:"booking"`
	Guest   domain.GuestDraft   `json:"guest"`
}

func (h *Handlers) newGuestBooking(w http.ResponseWriter, r *http.Request) {
	var in newGuestBooking
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	b, g, err := h.Desk.CreateBookingWithNewGuest(r.Context(), in.Booking, in.Guest)
	reply(w, r, http.StatusCreated, map[string]any{"booking": b, "guest": g}, err)
}

func (h *Handlers) updateBooking(w http.ResponseWriter, r *http.Request) {
	var in domain.Booking
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Desk.UpdateBooking(r.Context(), chi.URLParam(r, "id"), in)
	reply(w, r, http.StatusOK, out, err)
}

func (h *Handlers) onlineCheckin(w http.ResponseWriter, r *http.Request) {
	var in domain.OnlineCheckin
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Desk.OnlineCheckin(r.Context(), chi.URLParam(r, "id"), in)
	reply(w, r, http.StatusOK, out, err)
}

// ---- guest portal ----

func (h *Handlers) requestService(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Type    app.ServiceKind `json:"type"`
		Details string          `json:"details"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.RequestService(r.Context(), chi.URLParam(r, "id"), in.Type, in.Details)
	reply(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) roomServiceOrder(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Items []domain.SaleItem `json:"items"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	tx, b, err := h.Office.PlaceRoomServiceOrder(r.Context(), chi.URLParam(r, "id"), in.Items)
	reply(w, r, http.StatusCreated, map[string]any{"transaction": tx, "booking": b}, err)
}

// ---- reviews ----

func (h *Handlers) addReview(w http.ResponseWriter, r *http.Request) {
	var in domain.Review
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Desk.AddReview(r.Context(), in)
	reply(w, r, http.StatusCreated, out, err)
}
