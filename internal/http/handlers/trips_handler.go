package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/sophies-tours/internal/domain"
	"github.com/diagnosis/sophies-tours/internal/http/response"
	"github.com/diagnosis/sophies-tours/internal/service"
)

type TripHandler struct {
	Trips service.TripService
}

func NewTripHandler(trips service.TripService) *TripHandler {
	return &TripHandler{Trips: trips}
}

// Routes mounts the catalog. Reads are public, writes go through guard.
func (h *TripHandler) Routes(guard func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Group(func(r chi.Router) {
		r.Use(guard)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
	return r
}

func (h *TripHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.TripFilter{Destination: q.Get("destination")}
	if raw := q.Get("status"); raw != "" {
		st, ok := domain.ParseTripStatus(raw)
		if !ok {
			response.BadRequest(w, "invalid status (allowed: active, full, cancelled)")
			return
		}
		f.Status = &st
	}
	if raw := q.Get("includes_zinzino"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "includes_zinzino must be true or false")
			return
		}
		f.IncludesZinzino = &v
	}

	trips, err := h.Trips.List(r.Context(), f)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	response.WriteJSON(w, http.StatusOK, trips)
}

func (h *TripHandler) get(w http.ResponseWriter, r *http.Request) {
	trip, err := h.Trips.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, trip)
}

func (h *TripHandler) create(w http.ResponseWriter, r *http.Request) {
	var in domain.Trip
	if !decode(w, r, &in) {
		return
	}
	trip, err := h.Trips.Create(r.Context(), in)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, trip)
}

func (h *TripHandler) update(w http.ResponseWriter, r *http.Request) {
	var patch domain.TripPatch
	if !decode(w, r, &patch) {
		return
	}
	trip, err := h.Trips.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, trip)
}

func (h *TripHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Trips.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, messageResponse{Message: "Trip deleted successfully"})
}
