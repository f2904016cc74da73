package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	apperrors "spotsavers/internal/errors"
	"spotsavers/internal/repository"
	"spotsavers/internal/service"
)

type SpaceHandler struct {
	Service *service.SpaceService
}

func NewSpaceHandler(svc *service.SpaceService) *SpaceHandler {
	return &SpaceHandler{Service: svc}
}

func (h *SpaceHandler) PublishSpace(w http.ResponseWriter, r *http.Request) {
	var req PublishSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}
	entityReq, err := req.toEntity()
	if err != nil {
		writeError(w, err)
		return
	}
	space, err := h.Service.PublishSpace(entityReq)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, space)
}

func (h *SpaceHandler) SearchSpaces(w http.ResponseWriter, r *http.Request) {
	filter := repository.SpaceFilter{
		LocationID: queryInt(r, "location_id"),
		OwnerID:    queryInt(r, "owner_id"),
		City:       r.URL.Query().Get("city"),
	}
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			writeError(w, apperrors.Validation("invalid date, expected YYYY-MM-DD"))
			return
		}
		filter.Date = date
	}

	spaces, err := h.Service.SearchSpaces(filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spaces)
}

func (h *SpaceHandler) GetSpace(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.Validation("invalid space id"))
		return
	}
	space, err := h.Service.GetSpace(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, space)
}

func (h *SpaceHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Service.ListLocations(queryInt(r, "owner_id"), r.URL.Query().Get("city"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func queryInt(r *http.Request, key string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return value
}
