package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/cx-tal-miterani/seat-inventory/internal/catalog"
	"github.com/cx-tal-miterani/seat-inventory/internal/inventory"
	"github.com/cx-tal-miterani/seat-inventory/internal/websocket"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	seats   inventory.SeatService
	catalog catalog.Catalog
	hub     *websocket.Hub
}

// NewHandler creates a new Handler instance. The hub may be nil when
// no WebSocket broadcasting is wanted.
func NewHandler(seats inventory.SeatService, cat catalog.Catalog, hub *websocket.Hub) *Handler {
	return &Handler{
		seats:   seats,
		catalog: cat,
		hub:     hub,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondSeatError maps lifecycle errors onto HTTP statuses: missing
// seats are 404, invalid transitions are 409, anything else is a
// persistence failure and surfaces as 500.
func respondSeatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inventory.ErrSeatNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case inventory.IsConflict(err):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func parseID(r *http.Request, key string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[key])
}

// GetFlights handles GET /api/flights
func (h *Handler) GetFlights(w http.ResponseWriter, r *http.Request) {
	flights, err := h.catalog.GetFlights(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, flights)
}

// GetFlight handles GET /api/flights/{id}
func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	flightID, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid flight ID")
		return
	}

	flight, err := h.catalog.GetFlightByID(r.Context(), flightID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Flight not found")
		return
	}
	respondJSON(w, http.StatusOK, flight)
}

// GenerateSeats handles POST /api/flights/{id}/seats. Generation runs
// once per flight; a flight that already has seats is rejected here.
func (h *Handler) GenerateSeats(w http.ResponseWriter, r *http.Request) {
	flightID, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid flight ID")
		return
	}

	flight, err := h.catalog.GetFlightByID(r.Context(), flightID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Flight not found")
		return
	}

	has, err := h.seats.HasSeats(r.Context(), flightID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if has {
		respondError(w, http.StatusConflict, "Flight already has seats")
		return
	}

	count, err := h.seats.GenerateSeats(r.Context(), flight)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int{"created": count})
}

// GetSeatMap handles GET /api/flights/{id}/seat-map?class=economy
func (h *Handler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	flightID, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid flight ID")
		return
	}

	classParam := r.URL.Query().Get("class")
	if classParam == "" {
		classParam = string(inventory.SeatClassEconomy)
	}
	class, err := inventory.ParseSeatClass(classParam)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	seatMap, err := h.seats.SeatMap(r.Context(), flightID, class)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, seatMap)
}

// ReserveRequest is the body for POST /api/seats/{id}/reserve
type ReserveRequest struct {
	HoldMinutes int `json:"holdMinutes"`
}

// ReserveSeat handles POST /api/seats/{id}/reserve
func (h *Handler) ReserveSeat(w http.ResponseWriter, r *http.Request) {
	seatID, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid seat ID")
		return
	}

	var req ReserveRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if req.HoldMinutes < 0 {
		respondError(w, http.StatusBadRequest, "Hold duration must be positive")
		return
	}

	res, err := h.seats.Reserve(r.Context(), seatID, time.Duration(req.HoldMinutes)*time.Minute)
	if err != nil {
		respondSeatError(w, err)
		return
	}

	if h.hub != nil {
		h.hub.BroadcastReservation(res)
	}
	respondJSON(w, http.StatusOK, res)
}

// BookSeat handles POST /api/seats/{id}/book
func (h *Handler) BookSeat(w http.ResponseWriter, r *http.Request) {
	seatID, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid seat ID")
		return
	}

	seat, err := h.seats.Book(r.Context(), seatID)
	if err != nil {
		respondSeatError(w, err)
		return
	}

	if h.hub != nil {
		h.hub.BroadcastSeatChange(websocket.MessageTypeSeatBooked, seat)
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"seatId":     seat.ID.String(),
		"seatNumber": seat.SeatNumber,
		"status":     string(seat.Status),
	})
}

// ReleaseSeat handles POST /api/seats/{id}/release
func (h *Handler) ReleaseSeat(w http.ResponseWriter, r *http.Request) {
	seatID, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid seat ID")
		return
	}

	seat, err := h.seats.Release(r.Context(), seatID)
	if err != nil {
		respondSeatError(w, err)
		return
	}

	if h.hub != nil {
		h.hub.BroadcastSeatChange(websocket.MessageTypeSeatReleased, seat)
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"seatId":     seat.ID.String(),
		"seatNumber": seat.SeatNumber,
		"status":     string(seat.Status),
	})
}

// SweepExpired handles POST /api/seats/sweep
func (h *Handler) SweepExpired(w http.ResponseWriter, r *http.Request) {
	count, err := h.seats.SweepExpired(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"reclaimed": count})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
