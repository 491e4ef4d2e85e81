// main.go - Skylink API entry point
package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/DoROAD-AI/skylink/api"
	"github.com/DoROAD-AI/skylink/docs" // Swagger docs
	"github.com/DoROAD-AI/skylink/internal/cache"
	"github.com/DoROAD-AI/skylink/internal/flightservice"
	"github.com/DoROAD-AI/skylink/internal/ratelimit"
	"github.com/DoROAD-AI/skylink/internal/routeclient"
	"github.com/DoROAD-AI/skylink/internal/session"
	"github.com/DoROAD-AI/skylink/internal/token"
	"github.com/DoROAD-AI/skylink/internal/upstream"
	"github.com/DoROAD-AI/skylink/internal/wshub"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files" // Swagger files
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title       Skylink - Live Flight Tracking Aggregation API by DoROAD
// @version     1.0
// @description Skylink is DoROAD's flight-tracking backend aggregation service. It ingests ADS-B state vectors and historical tracks from OpenSky, enriches them into a client-ready geometric form relative to an observer, resolves route metadata against a second provider, and fans results out over both REST and WebSocket.
// @termsOfService http://skylink.doroad.io/terms/
// @contact.name  Skylink API Support
// @contact.url   https://github.com/DoROAD-AI/skylink/issues
// @contact.email support@doroad.ai
// @license.name  MIT / Proprietary
// @license.url   https://github.com/DoROAD-AI/skylink/blob/main/LICENSE
// @BasePath      /
// @schemes       https http
func getHost() string {
	env := os.Getenv("SKYLINK_ENV")
	switch env {
	case "production":
		return "skylink.doroad.io"
	case "test":
		return "skylink.doroad.dev"
	default:
		return "localhost:3101"
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file in main.go, relying on environment variables.")
	} else {
		log.Println(".env file loaded successfully in main.go")
	}

	env := os.Getenv("SKYLINK_ENV")
	if env == "development" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	byokEnabled, _ := strconv.ParseBool(getenvDefault("BYOK", "false"))
	tokenURL := getenvDefault("OPENSKY_TOKEN_URL", "https://auth.opensky-network.org/auth/realms/opensky-network/protocol/openid-connect/token")
	statesURL := getenvDefault("OPENSKY_API_URL", "https://opensky-network.org/api/states/all")
	tracksURL := getenvDefault("OPENSKY_TRACKS_API_URL", "https://opensky-network.org/api/tracks/all")
	aviationstackURL := getenvDefault("AVIATIONSTACK_API_URL", "https://api.aviationstack.com/v1/flights")
	aviationstackKey := os.Getenv("AVIATIONSTACK_API_KEY")
	elevationURL := getenvDefault("ELEVATION_API_URL", "https://api.open-elevation.com")

	memCache := cache.New()
	sessions := session.New(tokenURL)
	anonymous := token.New(os.Getenv("OPENSKY_CLIENT_ID"), os.Getenv("OPENSKY_CLIENT_SECRET"), tokenURL)
	limiter := ratelimit.New()

	flightClient := upstream.NewFlightClient(statesURL, tracksURL)
	flightSvc := flightservice.New(memCache, flightClient, sessions, anonymous, byokEnabled)

	routeProvider := upstream.NewRouteProvider(aviationstackURL, aviationstackKey)
	routes := routeclient.New(routeProvider, memCache)

	elevationClient := upstream.NewElevationClient(elevationURL)

	hub := wshub.New(flightSvc)

	stop := make(chan struct{})
	defer close(stop)
	go memCache.RunSweeper(stop)
	go sessions.RunSweeper(stop)
	go hub.RunBroadcastLoop(stop)

	deps := &api.Dependencies{
		Flights:     flightSvc,
		Routes:      routes,
		Elevation:   elevationClient,
		Cache:       memCache,
		Sessions:    sessions,
		Anonymous:   anonymous,
		RateLimit:   limiter,
		BYOKEnabled: byokEnabled,
		StartedAt:   time.Now(),
		TokenURL:    tokenURL,
	}

	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Session-Token"}
	router.Use(cors.New(config))

	docs.SwaggerInfo.Host = getHost()

	api.RegisterRoutes(router, deps)
	router.GET("/ws", hub.Handler())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := getenvDefault("PORT", "3101")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Skylink API listening on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down")
}
