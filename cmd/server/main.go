package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"agendamiento/internal/api"
	"agendamiento/internal/auth"
	"agendamiento/internal/client"
	"agendamiento/internal/repository"
	"agendamiento/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	apiURL := os.Getenv("WELLNESS_API_URL")
	if apiURL == "" {
		log.Fatal("WELLNESS_API_URL not set")
	}
	wellness := client.NewWellnessClient(apiURL, os.Getenv("WELLNESS_API_TOKEN"), nil)
	rates := client.NewRatesClient(os.Getenv("RATES_API_URL"), nil)
	ip := client.NewIPClient(os.Getenv("IP_API_URL"), nil)

	purchaseRepo := repository.NewPurchaseRepository(db)
	jobRepo := repository.NewJobRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)

	scheduleSvc := service.NewScheduleService(wellness)
	binanceSvc := service.NewBinanceService(wellness)
	todayPaySvc := service.NewTodayPayService(wellness, ip)
	senderSvc := service.NewSenderService()
	purchaseSvc := service.NewPurchaseService(wellness, rates, binanceSvc, todayPaySvc, purchaseRepo, senderSvc)
	jobSvc := service.NewJobService(jobRepo)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)

	purchaseHandler := api.NewPurchaseHandler(purchaseSvc)
	scheduleHandler := api.NewScheduleHandler(scheduleSvc, rates)
	adminHandler := api.NewAdminHandler(purchaseRepo)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/sessions/{id}/blocked-dates", scheduleHandler.BlockedDates).Methods("GET")
	r.HandleFunc("/api/sessions/{id}/schedules", scheduleHandler.Slots).Methods("GET")
	r.HandleFunc("/api/courses/{id}/timetable", scheduleHandler.Timetable).Methods("GET")
	r.HandleFunc("/api/rates", scheduleHandler.GetRates).Methods("GET")
	r.HandleFunc("/api/purchases", purchaseHandler.CreatePurchase).Methods("POST")
	r.HandleFunc("/api/purchases/{code}", purchaseHandler.GetPurchase).Methods("GET")
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/users", adminAuthHandler.CreateUserAdmin).Methods("POST")
	admin.HandleFunc("/purchases", adminHandler.ListPurchases).Methods("GET")

	c := cron.New()
	if _, err := c.AddFunc("@every 30m", func() {
		if err := jobSvc.MarkAbandonedPurchases(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule cron job: %v", err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
