package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cx-tal-miterani/seat-inventory/internal/catalog"
	"github.com/cx-tal-miterani/seat-inventory/internal/database"
	"github.com/cx-tal-miterani/seat-inventory/internal/handlers"
	"github.com/cx-tal-miterani/seat-inventory/internal/inventory"
	"github.com/cx-tal-miterani/seat-inventory/internal/router"
	"github.com/cx-tal-miterani/seat-inventory/internal/websocket"
)

const DefaultPort = "8080"

func main() {
	ctx := context.Background()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = DefaultPort
	}

	var store inventory.Store
	var flightCatalog catalog.Catalog

	// Without a database the server runs on an in-memory inventory,
	// which is enough for demos and local development.
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL != "" {
		log.Println("Connecting to database...")
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}

		repo := database.NewRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate schema: %v", err)
		}
		if err := repo.SeedSampleFlights(ctx); err != nil {
			log.Fatalf("Failed to seed flights: %v", err)
		}

		store = repo
		flightCatalog = repo
		log.Println("Connected to database")
	} else {
		log.Println("DATABASE_URL not set, using in-memory inventory")
		store = inventory.NewMemStore()
		flightCatalog = catalog.NewMemory(catalog.SampleFlights()...)
	}

	seatService := inventory.NewService(store)
	h := handlers.NewHandler(seatService, flightCatalog, websocket.GetHub())
	r := router.SetupRouter(h)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Seat inventory API starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
