package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/sophies-tours/internal/domain"
	"github.com/diagnosis/sophies-tours/internal/http/middleware"
	"github.com/diagnosis/sophies-tours/internal/http/response"
	"github.com/diagnosis/sophies-tours/internal/service"
)

type AdminHandler struct {
	Trips    service.TripService
	Bookings service.BookingService
}

func NewAdminHandler(trips service.TripService, bookings service.BookingService) *AdminHandler {
	return &AdminHandler{Trips: trips, Bookings: bookings}
}

// APIRoutes is mounted at /api/admin behind the JSON gate.
func (h *AdminHandler) APIRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/session", h.session)
	r.Get("/bookings", h.listBookings)
	r.Patch("/bookings/{id}", h.updateBooking)
	return r
}

// PageRoutes is mounted at /admin behind the redirecting gate.
func (h *AdminHandler) PageRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.dashboard)
	return r
}

type sessionResponse struct {
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *AdminHandler) session(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r)
	if claims == nil {
		response.Unauthorized(w, "authentication required")
		return
	}
	out := sessionResponse{Email: claims.Email, IsAdmin: claims.IsAdmin}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	response.WriteJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) listBookings(w http.ResponseWriter, r *http.Request) {
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

func (h *AdminHandler) updateBooking(w http.ResponseWriter, r *http.Request) {
	var patch domain.BookingPatch
	if !decode(w, r, &patch) {
		return
	}
	b, err := h.Bookings.UpdateStatus(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, b)
}

type countSummary struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

type dashboardResponse struct {
	Trips       countSummary `json:"trips"`
	Bookings    countSummary `json:"bookings"`
	SeatsBooked int          `json:"seats_booked"`
	Revenue     float64      `json:"revenue"`
}

// dashboard summarizes the catalog and register. Cancelled bookings count
// toward neither seats nor revenue.
func (h *AdminHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Trips.List(r.Context(), domain.TripFilter{})
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	bookings, err := h.Bookings.List(r.Context(), domain.BookingFilter{})
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}

	out := dashboardResponse{
		Trips:    countSummary{Total: len(trips), ByStatus: map[string]int{}},
		Bookings: countSummary{Total: len(bookings), ByStatus: map[string]int{}},
	}
	for _, t := range trips {
		out.Trips.ByStatus[string(t.Status)]++
	}
	for _, b := range bookings {
		out.Bookings.ByStatus[string(b.Status)]++
		if b.Status != domain.BookingCancelled {
			out.SeatsBooked += b.Participants
			out.Revenue += b.TotalPrice
		}
	}
	response.WriteJSON(w, http.StatusOK, out)
}
