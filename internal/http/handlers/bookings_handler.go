package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/sophies-tours/internal/domain"
	"github.com/diagnosis/sophies-tours/internal/http/response"
	"github.com/diagnosis/sophies-tours/internal/service"
)

type BookingHandler struct {
	Bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

type submitResponse struct {
	Booking          domain.Booking `json:"booking"`
	ConfirmationCode string         `json:"confirmation_code"`
}

// Routes mounts guest booking endpoints. submit wraps POST (idempotency),
// guard protects the listing.
func (h *BookingHandler) Routes(guard, submit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(submit).Post("/", h.create)
	r.With(guard).Get("/", h.list)
	r.Get("/confirmation/{code}", h.confirmation)
	return r
}

func (h *BookingHandler) create(w http.ResponseWriter, r *http.Request) {
	var in domain.BookingRequest
	if !decode(w, r, &in) {
		return
	}
	b, err := h.Bookings.Submit(r.Context(), in)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, submitResponse{Booking: b, ConfirmationCode: b.ConfirmationCode})
}

func (h *BookingHandler) list(w http.ResponseWriter, r *http.Request) {
	f, ok := bookingFilter(w, r)
	if !ok {
		return
	}
	bs, err := h.Bookings.List(r.Context(), f)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	if bs == nil {
		bs = []domain.Booking{}
	}
	response.WriteJSON(w, http.StatusOK, bs)
}

func (h *BookingHandler) confirmation(w http.ResponseWriter, r *http.Request) {
	c, err := h.Bookings.GetConfirmation(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, c)
}

func bookingFilter(w http.ResponseWriter, r *http.Request) (domain.BookingFilter, bool) {
	q := r.URL.Query()
	f := domain.BookingFilter{TripID: q.Get("trip_id")}
	if raw := q.Get("status"); raw != "" {
		st, ok := domain.ParseBookingStatus(raw)
		if !ok {
			response.BadRequest(w, "invalid status (allowed: pending, confirmed, cancelled, completed)")
			return f, false
		}
		f.Status = &st
	}
	return f, true
}
