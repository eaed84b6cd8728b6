package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cx-tal-miterani/seat-inventory/internal/handlers"
	"github.com/cx-tal-miterani/seat-inventory/internal/websocket"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Flights
	api.HandleFunc("/flights", h.GetFlights).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights/{id}", h.GetFlight).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights/{id}/seats", h.GenerateSeats).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flights/{id}/seat-map", h.GetSeatMap).Methods(http.MethodGet, http.MethodOptions)

	// Seat lifecycle
	api.HandleFunc("/seats/sweep", h.SweepExpired).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/seats/{id}/reserve", h.ReserveSeat).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/seats/{id}/book", h.BookSeat).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/seats/{id}/release", h.ReleaseSeat).Methods(http.MethodPost, http.MethodOptions)

	// WebSocket for real-time seat updates
	api.HandleFunc("/flights/{flightId}/ws", websocket.HandleWebSocket)

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
