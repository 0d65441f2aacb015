package server

import (
	"time"

	"cat-server/confs"
	"cat-server/db"
	"cat-server/handlers"
	httpHandler "cat-server/handlers/http"
	"cat-server/middleware"
	"cat-server/repositories"
	"cat-server/services"
	"cat-server/usecases"
	"cat-server/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app *gin.Engine
	db  db.Database
	cfg *confs.Config
}

func NewServer(database db.Database, cfg *confs.Config) *Server {
	return &Server{
		app: gin.Default(),
		db:  database,
		cfg: cfg,
	}
}

func (s *Server) Start() {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	// Every handler forwards typed errors here instead of writing responses
	s.app.Use(middleware.ErrorHandler())

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	catRepo := repositories.NewCatPgRepository(s.db)
	auditRepo := repositories.NewAuditEventPgRepository(s.db)

	// WebSocket manager and audit recorder
	manager := ws.NewManager()
	recorder := services.NewAuditRecorder(auditRepo, manager, time.Duration(s.cfg.FlushEvery)*time.Minute)
	recorder.Start()
	defer recorder.Stop()

	// Initialize use cases
	userUseCase := usecases.NewUserUseCase(userRepo, recorder, s.cfg.BcryptCost, s.cfg.AdminEmail)
	catUseCase := usecases.NewCatUseCase(catRepo, userRepo, recorder)

	// Initialize handlers
	userHandler := httpHandler.NewUserHandler(userUseCase)
	catHandler := httpHandler.NewCatHandler(catUseCase)
	loginHandler := httpHandler.NewLoginHandler(userUseCase, s.cfg.JWTSecret, time.Duration(s.cfg.TokenTTLMin)*time.Minute)
	auditHandler := httpHandler.NewAuditHandler(recorder, auditRepo)
	wsHandler := handlers.NewWSHandler(manager)

	authed := middleware.Authenticate(s.cfg.JWTSecret)
	adminOnly := middleware.RequireRole("admin")

	// Setup API routes
	api := s.app.Group("/api/v1")
	{
		// Cat routes
		cats := api.Group("/cats")
		{
			cats.GET("", catHandler.GetAllCats)
			cats.GET("/area", catHandler.GetCatsInArea)
			cats.GET("/my", authed, catHandler.GetCatsByOwner)
			cats.GET("/:id", catHandler.GetCat)
			cats.POST("", authed, middleware.Upload(s.cfg.UploadDir), catHandler.CreateCat)
			cats.PUT("/:id", authed, catHandler.UpdateCat)
			cats.DELETE("/:id", authed, catHandler.DeleteCat)
			cats.PUT("/:id/owner", authed, adminOnly, catHandler.UpdateCatOwnerAdmin)
			cats.DELETE("/:id/admin", authed, adminOnly, catHandler.DeleteCatAdmin)
		}

		// User routes
		users := api.Group("/users")
		{
			users.GET("", userHandler.GetAllUsers)
			users.GET("/token", authed, userHandler.CheckToken)
			users.GET("/:id", userHandler.GetUser)
			users.POST("", userHandler.CreateUser)
			users.PUT("", authed, userHandler.UpdateCurrentUser)
			users.DELETE("", authed, userHandler.DeleteCurrentUser)
		}

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", loginHandler.Login)
		}

		// Audit endpoints
		audit := api.Group("/audit", authed, adminOnly)
		{
			audit.GET("", auditHandler.GetRecent)
			audit.GET("/stats", auditHandler.GetStats)
			audit.POST("/flush", auditHandler.Flush)
		}

		api.GET("/events/connected", wsHandler.GetConnectedClients)
	}

	s.app.GET("/ws", wsHandler.HandleEventFeed)

	if err := s.app.Run("0.0.0.0:" + s.cfg.Port); err != nil {
		panic(err)
	}
}
