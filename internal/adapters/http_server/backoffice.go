package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hostel_pms/internal/app"
	"hostel_pms/internal/domain"
)

func (h *Handlers) mountBackOffice(m chi.Router) {
	m.Route("/staff", func(r chi.Router) {
		r.Post("/", h.addStaff)
		r.Put("/{id}", h.updateStaff)
		r.Delete("/{id}", deleteByID(h.Office.DeleteStaff))
		r.Post("/{id}/complete-onboarding", byID(h.Office.CompleteOnboarding))
		r.Put("/{id}/onboarding-plan", h.saveStaffDocument(domain.SettingOnboardingPlans))
		r.Put("/{id}/performance-review", h.saveStaffDocument(domain.SettingPerformanceReviews))
	})
	m.Route("/tasks", func(r chi.Router) {
		r.Post("/", h.addTask)
		r.Put("/{id}", h.updateTask)
		r.Put("/{id}/status", h.setTaskStatus)
		r.Post("/{id}/approve", byID(h.Office.ApproveTask))
		r.Post("/{id}/reject", h.rejectTask)
	})
	m.Route("/projects", func(r chi.Router) {
		r.Post("/", h.addProject)
		r.Put("/{id}", h.updateProject)
		r.Delete("/{id}", deleteByID(h.Office.DeleteProject))
	})
	m.Route("/products", func(r chi.Router) {
		r.Post("/", h.addProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", deleteByID(h.Office.DeleteProduct))
		r.Post("/{id}/adjust-stock", h.adjustStock)
		r.Post("/receive", withBody(http.StatusOK, h.Office.ReceiveStock))
	})
	m.Route("/shopping-list/items", func(r chi.Router) {
		r.Post("/", withBody(http.StatusCreated, h.Office.AddShoppingListItem))
		r.Put("/{id}/status", h.setShoppingItemStatus)
	})
	m.Post("/transactions", h.recordTransaction)
	m.Route("/expenses", func(r chi.Router) {
		r.Post("/", h.addExpense)
		r.Delete("/{id}", deleteByID(h.Office.DeleteExpense))
	})
	m.Route("/chat", func(r chi.Router) {
		r.Post("/messages", h.sendMessage)
		r.Post("/conversations/{id}/read", byID(h.Office.MarkConversationRead))
		r.Post("/website", h.startWebsiteConversation)
		r.Post("/internal", h.startInternalChat)
	})
}

func deleteByID(fn func(ctx context.Context, id string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noContent(w, r, fn(r.Context(), chi.URLParam(r, "id")))
	}
}

// ---- staff ----

func (h *Handlers) addStaff(w http.ResponseWriter, r *http.Request) {
	var in domain.Staff
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.AddStaff(r.Context(), in)
	reply(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) updateStaff(w http.ResponseWriter, r *http.Request) {
	var in domain.Staff
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.UpdateStaff(r.Context(), chi.URLParam(r, "id"), in)
	reply(w, r, http.StatusOK, out, err)
}

// ---- tasks ----

func (h *Handlers) addTask(w http.ResponseWriter, r *http.Request) {
	var in domain.StaffTask
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.AddTask(r.Context(), in)
	reply(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) updateTask(w http.ResponseWriter, r *http.Request) {
	var in domain.StaffTask
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.UpdateTask(r.Context(), chi.URLParam(r, "id"), in)
	reply(w, r, http.StatusOK, out, err)
}

func (h *Handlers) setTaskStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status domain.TaskStatus `json:"status"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.SetTaskStatus(r.Context(), chi.URLParam(r, "id"), in.Status)
	reply(w, r, http.StatusOK, out, err)
}

func (h *Handlers) rejectTask(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Comment string `json:"comment"`
	}
	if err := decodeOptional(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.RejectTask(r.Context(), chi.URLParam(r, "id"), in.Comment)
	reply(w, r, http.StatusOK, out, err)
}

// ---- projects ----

func (h *Handlers) addProject(w http.ResponseWriter, r *http.Request) {
	var in domain.Project
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.AddProject(r.Context(), in)
	reply(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) updateProject(w http.ResponseWriter, r *http.Request) {
	var in domain.Project
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.UpdateProject(r.Context(), chi.URLParam(r, "id"), in)
	reply(w, r, http.StatusOK, out, err)
}

// ---- point of sale ----

func (h *Handlers) addProduct(w http.ResponseWriter, r *http.Request) {
	var in domain.Product
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.AddProduct(r.Context(), in)
	reply(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) updateProduct(w http.ResponseWriter, r *http.Request) {
	var in domain.Product
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.UpdateProduct(r.Context(), chi.URLParam(r, "id"), in)
	reply(w, r, http.StatusOK, out, err)
}

func (h *Handlers) adjustStock(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Delta int `json:"delta"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.AdjustStock(r.Context(), chi.URLParam(r, "id"), in.Delta)
	reply(w, r, http.StatusOK, out, err)
}

func (h *Handlers) recordTransaction(w http.ResponseWriter, r *http.Request) {
	var in domain.Transaction
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.RecordTransaction(r.Context(), in)
	reply(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) addExpense(w http.ResponseWriter, r *http.Request) {
	var in domain.Expense
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.AddExpense(r.Context(), in)
	reply(w, r, http.StatusCreated, out, err)
}

// ---- inbox ----

func (h *Handlers) sendMessage(w http.ResponseWriter, r *http.Request) {
	var in app.ChatSend
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	msg, conv, err := h.Office.SendMessage(r.Context(), in)
	reply(w, r, http.StatusCreated, map[string]any{"message": msg, "conversation": conv}, err)
}

func (h *Handlers) setShoppingItemStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status domain.ShoppingItemStatus `json:"status"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.SetShoppingItemStatus(r.Context(), chi.URLParam(r, "id"), in.Status)
	reply(w, r, http.StatusOK, out, err)
}

func (h *Handlers) startWebsiteConversation(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
		Text string `json:"text"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	msg, conv, err := h.Office.StartWebsiteConversation(r.Context(), in.Name, in.Text)
	reply(w, r, http.StatusCreated, map[string]any{"message": msg, "conversation": conv}, err)
}

func (h *Handlers) startInternalChat(w http.ResponseWriter, r *http.Request) {
	var in struct {
		StaffID string `json:"staffId"`
		PeerID  string `json:"peerId"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	out, err := h.Office.StartOrGetInternalChat(r.Context(), in.StaffID, in.PeerID)
	reply(w, r, http.StatusOK, out, err)
}
