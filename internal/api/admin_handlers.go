package api

import (
	"net/http"

	"spotsavers/internal/service"
)

type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) ListSpaces(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	state := r.URL.Query().Get("state")
	spaces, err := h.Service.ListSpaces(date, state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spaces)
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	bookings, err := h.Service.ListBookings(state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
