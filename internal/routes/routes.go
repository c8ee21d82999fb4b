package routes

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sanbil2024/e-videoteka/internal/handlers"
	"github.com/sanbil2024/e-videoteka/internal/middleware"
	"github.com/sanbil2024/e-videoteka/internal/repository"
)

func SetupRoutes(
	authHandler *handlers.AuthHandler,
	movieHandler *handlers.MovieHandler,
	purchaseHandler *handlers.PurchaseHandler,
	reviewHandler *handlers.ReviewHandler,
	recommendationHandler *handlers.RecommendationHandler,
	userRepo repository.UserRepository,
) *gin.Engine {

	router := gin.New()

	// =========================
	// GLOBAL MIDDLEWARE
	// =========================
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// =========================
	// CORS CONFIG (DEV / PROD)
	// =========================
	env := os.Getenv("ENV") // development | production
	frontendURL := os.Getenv("CORS_ORIGIN")

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if env == "production" {
		if frontendURL == "" {
			log.Fatal("❌ CORS_ORIGIN environment variable is NOT set in production!")
		}
		corsConfig.AllowOrigins = []string{frontendURL}
		log.Printf("✅ CORS configured for production: %s", frontendURL)
	} else {
		allowedOrigins := []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		}

		if frontendURL != "" {
			allowedOrigins = append(allowedOrigins, frontendURL)
		}

		corsConfig.AllowOriginFunc = func(origin string) bool {
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			// Allow local network IPs (192.168.x.x, 10.x.x.x)
			if strings.HasPrefix(origin, "http://192.168.") || strings.HasPrefix(origin, "http://10.") {
				return true
			}
			return false
		}
		log.Printf("✅ CORS configured for development with %d allowed origins", len(allowedOrigins))
	}

	router.Use(cors.New(corsConfig))

	// =========================
	// SECURITY HEADERS MIDDLEWARE
	// =========================
	router.Use(func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	})

	// =========================
	// API ROUTES
	// =========================
	api := router.Group("/api")
	{
		// ---------- AUTH ----------
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)

			authProtected := auth.Group("/")
			authProtected.Use(middleware.JWTMiddleware())
			{
				authProtected.GET("/me", authHandler.Me)
				authProtected.PUT("/me", authHandler.UpdateMe)
			}
		}

		// ---------- PUBLIC MOVIES ----------
		movies := api.Group("/movies")
		{
			movies.GET("", movieHandler.GetAllMovies)
			movies.GET("/search", movieHandler.SearchMovies)
			movies.GET("/top", movieHandler.GetTopRatedMovies)
			movies.GET("/genre/:genre", movieHandler.GetMoviesByGenre)
			movies.GET("/:id", middleware.OptionalJWTMiddleware(), movieHandler.GetMovieByID)
			movies.GET("/:id/reviews", reviewHandler.GetMovieReviews)
		}

		// ---------- PUBLIC RECOMMENDATIONS ----------
		recommendations := api.Group("/recommendations")
		{
			recommendations.GET("/similar/:movie_id", recommendationHandler.GetSimilarMovies)
			recommendations.GET("/trending", recommendationHandler.GetTrendingMovies)
		}

		// ---------- PROTECTED ----------
		protected := api.Group("/")
		protected.Use(middleware.JWTMiddleware())
		{
			// USER
			user := protected.Group("/user")
			{
				user.POST("/favorites/:movie_id", movieHandler.AddFavorite)
				user.DELETE("/favorites/:movie_id", movieHandler.RemoveFavorite)
				user.GET("/favorites", movieHandler.GetFavorites)
				user.POST("/history/:movie_id", movieHandler.RecordWatch)
				user.GET("/history", movieHandler.GetWatchHistory)
			}

			// PURCHASES
			purchases := protected.Group("/purchases")
			{
				purchases.POST("", purchaseHandler.CreatePurchase)
				purchases.GET("", purchaseHandler.GetUserPurchases)
				purchases.POST("/:id/view", purchaseHandler.RecordView)
			}

			// REVIEWS
			protected.POST("/movies/:id/reviews", reviewHandler.AddReview)
			protected.DELETE("/movies/:id/reviews/:review_id", reviewHandler.DeleteReview)

			// RECOMMENDATIONS
			protected.GET("/recommendations", recommendationHandler.GetPersonalRecommendations)
			protected.GET("/recommendations/profile", recommendationHandler.GetProfileRecommendations)

			// ADMIN
			admin := protected.Group("/admin")
			admin.Use(middleware.AdminMiddleware(userRepo))
			{
				admin.POST("/movies/seed", movieHandler.SeedMovies)
			}
		}
	}

	// =========================
	// HEALTH & ROOT
	// =========================
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "success",
			"message": "Server is running",
		})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "success",
			"message": "E-Videoteka API",
			"version": "1.0.0",
		})
	})

	return router
}
