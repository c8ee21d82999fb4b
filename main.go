// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sanbil2024/e-videoteka/internal/config"
	"github.com/sanbil2024/e-videoteka/internal/database"
	"github.com/sanbil2024/e-videoteka/internal/handlers"
	"github.com/sanbil2024/e-videoteka/internal/repository"
	"github.com/sanbil2024/e-videoteka/internal/routes"
	"github.com/sanbil2024/e-videoteka/internal/services"
)

func main() {

	// =========================
	// LOAD CONFIG
	// =========================
	if err := config.LoadConfig(); err != nil {
		log.Println("⚠️ Config load warning:", err)
		log.Println("⚠️ Using environment variables only")
	}

	// =========================
	// CONNECT DATABASE
	// =========================
	if err := database.ConnectDB(); err != nil {
		log.Fatalln("❌ Database connection failed:", err)
	}

	if err := database.AutoMigrate(); err != nil {
		log.Fatalln("❌ Database migration failed:", err)
	}

	// Keep the connection pool warm
	go func() {
		sqlDB, err := database.DB.DB()
		if err != nil {
			return
		}
		for {
			sqlDB.Ping()
			time.Sleep(5 * time.Minute)
		}
	}()

	// =========================
	// INIT REPOSITORIES
	// =========================
	userRepo := repository.NewUserRepository()
	movieRepo := repository.NewMovieRepository()
	purchaseRepo := repository.NewPurchaseRepository()
	reviewRepo := repository.NewReviewRepository()

	// =========================
	// INIT SERVICES
	// =========================
	profileService := services.NewProfileService(movieRepo)
	personalizedService := services.NewPersonalizedService(movieRepo, purchaseRepo, profileService)
	similarityService := services.NewSimilarityService(movieRepo)
	trendingService := services.NewTrendingService(movieRepo, purchaseRepo)

	// =========================
	// INIT HANDLERS
	// =========================
	authHandler := handlers.NewAuthHandler(userRepo)
	movieHandler := handlers.NewMovieHandler(movieRepo, userRepo, purchaseRepo)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseRepo, movieRepo)
	reviewHandler := handlers.NewReviewHandler(reviewRepo, movieRepo, userRepo)

	recommendationHandler := handlers.NewRecommendationHandler(
		personalizedService,
		similarityService,
		trendingService,
		profileService,
		userRepo,
	)

	// =========================
	// ROUTES
	// =========================
	router := routes.SetupRoutes(
		authHandler,
		movieHandler,
		purchaseHandler,
		reviewHandler,
		recommendationHandler,
		userRepo,
	)

	// =========================
	// PORT
	// =========================
	port := os.Getenv("PORT")
	if port == "" {
		port = config.GlobalConfig.ServerPort
	}
	if port == "" {
		port = "8080"
	}

	bindAddr := "0.0.0.0:" + port

	// =========================
	// SERVER CONFIG
	// =========================
	server := &http.Server{
		Addr:         bindAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// =========================
	// START SERVER
	// =========================
	go func() {
		log.Println("🎬 =======================================")
		log.Println("🎬   E-VIDEOTEKA API SERVER")
		log.Println("🎬 =======================================")
		log.Printf("🎬   Running on: %s", bindAddr)
		log.Println("🎬 =======================================")
		log.Println("🚀 Server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Println("❌ Server error:", err)
		}
	}()

	// =========================
	// GRACEFUL SHUTDOWN
	// =========================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}

	log.Println("✅ Server exited properly")
}
