package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"spotsavers/internal/api"
	"spotsavers/internal/auth"
	"spotsavers/internal/repository"
	"spotsavers/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	spaceRepo := repository.NewSpaceRepository(database)
	bookingRepo := repository.NewBookingRepository(database)
	paymentRepo := repository.NewPaymentMethodRepository(database)
	directoryRepo := repository.NewDirectoryRepository(database)
	jobRepo := repository.NewJobRepository(database)
	adminAuthRepo := repository.NewAdminAuthRepository(database)

	sender := service.NewSenderService()
	spaceSvc := service.NewSpaceService(spaceRepo, directoryRepo)
	bookingSvc := service.NewBookingService(bookingRepo, spaceRepo, paymentRepo, directoryRepo, sender)
	adminSvc := service.NewAdminService(spaceRepo, bookingRepo)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)
	jobSvc := service.NewJobService(jobRepo)

	spaceHandler := api.NewSpaceHandler(spaceSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	adminHandler := api.NewAdminHandler(adminSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/spaces", spaceHandler.PublishSpace).Methods("POST")
	r.HandleFunc("/api/spaces", spaceHandler.SearchSpaces).Methods("GET")
	r.HandleFunc("/api/spaces/{id}", spaceHandler.GetSpace).Methods("GET")
	r.HandleFunc("/api/locations", spaceHandler.ListLocations).Methods("GET")
	r.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings", bookingHandler.ListBookings).Methods("GET")
	r.HandleFunc("/api/bookings/{id}/approve", bookingHandler.ApproveBooking).Methods("POST")
	r.HandleFunc("/api/bookings/{id}/reject", bookingHandler.RejectBooking).Methods("POST")
	r.HandleFunc("/api/bookings/{id}/cancel", bookingHandler.CancelBooking).Methods("POST")
	r.HandleFunc("/api/bookings/{id}/settle", bookingHandler.SettleBooking).Methods("POST")
	r.HandleFunc("/api/payment-methods", bookingHandler.ListPaymentMethods).Methods("GET")
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/spaces", adminHandler.ListSpaces).Methods("GET")
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/admins", adminAuthHandler.CreateAdmin).Methods("POST")

	c := cron.New()
	c.AddFunc("*/10 * * * *", func() {
		if err := jobSvc.ExpireSpaces(); err != nil {
			log.Printf("Cron Job: %v", err)
		}
	})
	if ttlStr := os.Getenv("PENDING_BOOKING_TTL_HOURS"); ttlStr != "" {
		ttlHours, err := strconv.Atoi(ttlStr)
		if err != nil || ttlHours <= 0 {
			log.Fatalf("Invalid PENDING_BOOKING_TTL_HOURS: %q", ttlStr)
		}
		ttl := time.Duration(ttlHours) * time.Hour
		c.AddFunc("0 * * * *", func() {
			if err := jobSvc.RejectStalePendingBookings(ttl); err != nil {
				log.Printf("Cron Job: %v", err)
			}
		})
	}
	c.Start()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
