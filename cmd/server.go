package cmd

import (
	"net/http"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"trackdrop/config"
	"trackdrop/handlers"
	"trackdrop/middleware"
	"trackdrop/services"
	"trackdrop/web"
	"trackdrop/websocket"
)

// StartWebServer starts the web server
func StartWebServer(port int) {
	// Set production mode if not specified
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", "err", err)
	}
	if port > 0 {
		cfg.Port = port
	}

	// Initialize services
	library := services.NewLibrary(cfg.UploadsDir, cfg.MetadataFile)
	if err := library.Bootstrap(); err != nil {
		log.Fatal("Failed to initialize storage", "err", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(library, hub, cfg.MaxUploadBytes)
	songsHandler := handlers.NewSongsHandler(library)
	filesHandler := handlers.NewFilesHandler(library)
	eventsHandler := handlers.NewEventsHandler(hub)
	healthHandler := handlers.NewHealthHandler()

	// Setup router
	r := gin.New()
	r.Use(gin.Recovery())

	// Apply middleware
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())

	// Setup routes
	setupRoutes(r, uploadHandler, songsHandler, filesHandler, eventsHandler, healthHandler)

	// Start server
	portStr := strconv.Itoa(cfg.Port)
	if serverPort := os.Getenv("SERVER_PORT"); serverPort != "" {
		portStr = serverPort
	}

	log.Info("trackdrop server starting", "port", portStr, "uploads", cfg.UploadsDir)
	if err := r.Run(":" + portStr); err != nil {
		log.Fatal("Failed to start server", "err", err)
	}
}

// setupRoutes configures all the HTTP routes
func setupRoutes(r *gin.Engine, uploadHandler *handlers.UploadHandler, songsHandler *handlers.SongsHandler, filesHandler *handlers.FilesHandler, eventsHandler *handlers.EventsHandler, healthHandler *handlers.HealthHandler) {
	// Client UI
	r.GET("/", func(c *gin.Context) {
		page, err := web.Index()
		if err != nil {
			c.String(http.StatusInternalServerError, "client UI unavailable")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})

	// Health check endpoint
	r.GET("/health", healthHandler.HealthCheck)

	// Upload and listing endpoints
	r.POST("/upload", uploadHandler.Upload)
	r.GET("/songs", songsHandler.List)

	// Static passthrough for stored uploads
	r.GET("/uploads/:filename", filesHandler.ServeUpload)

	// WebSocket endpoint for library change events
	r.GET("/ws", eventsHandler.HandleWebSocketConnection)
}
