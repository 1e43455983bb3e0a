package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"RestaurantFinder-App/internal/application"
	"RestaurantFinder-App/internal/config"
	"RestaurantFinder-App/internal/domain/service"
	"RestaurantFinder-App/internal/handler"
	"RestaurantFinder-App/internal/infrastructure/geolocation"
	"RestaurantFinder-App/internal/infrastructure/maps"
	"RestaurantFinder-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Println("⚠️  環境変数が設定されていません:")
			fmt.Println("必要な環境変数: GOOGLE_MAPS_API_KEY")
			fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		}
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	fmt.Println("Initializing restaurant discovery pipeline...")

	// インフラ層
	placesProvider := maps.NewGooglePlacesProvider(cfg.GoogleMapsAPIKey, cfg.MaxResults)
	locationProvider := geolocation.NewGoogleGeolocationProvider(cfg.GoogleMapsAPIKey)

	// ドメイン層・ユースケース層
	planner := service.NewQueryPlanner(cfg.SearchRadiusMeters)
	merger := service.NewResultMerger()
	searchUseCase := usecase.NewRestaurantSearchUseCase(placesProvider, merger)

	// アプリケーション層
	discoveryService := application.NewDiscoveryService(
		planner,
		searchUseCase,
		locationProvider,
		application.DiscoveryConfig{
			DefaultAnchor:   cfg.DefaultAnchor,
			LocationTimeout: cfg.GeolocationTimeout,
			MapZoom:         cfg.MapZoom,
		},
		nil,
	)

	// HTTPハンドラーの設定
	router := gin.Default()
	discoveryHandler := handler.NewDiscoveryHandler(discoveryService)
	discoveryHandler.RegisterRoutes(router)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "RestaurantFinder-App"})
	})

	// SPAフロントエンドは別オリジンで配信されるためCORSを許可する
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
		AllowCredentials: true,
	}).Handler(router)

	fmt.Printf("RestaurantFinder-App server starting on :%s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
