package api

import (
	"strings"
	"time"

	"inovatrust/config"
	"inovatrust/domain/interfaces"
	"inovatrust/realtime"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Server is the HTTP surface of the platform
type Server struct {
	router    *gin.Engine
	jwtSecret string

	auth         interfaces.AuthService
	withdrawals  interfaces.WithdrawalService
	chat         interfaces.ChatService
	investments  interfaces.InvestmentService
	staking      interfaces.StakingService
	users        interfaces.UserService
	transactions interfaces.TransactionService
	settings     interfaces.SettingsService

	hub *realtime.Hub
}

// Services bundles everything the server depends on
type Services struct {
	Auth         interfaces.AuthService
	Withdrawals  interfaces.WithdrawalService
	Chat         interfaces.ChatService
	Investments  interfaces.InvestmentService
	Staking      interfaces.StakingService
	Users        interfaces.UserService
	Transactions interfaces.TransactionService
	Settings     interfaces.SettingsService
}

// NewServer creates the API server and registers all routes
func NewServer(cfg *config.Config, services Services, hub *realtime.Hub) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		jwtSecret:    cfg.JWTSecret,
		auth:         services.Auth,
		withdrawals:  services.Withdrawals,
		chat:         services.Chat,
		investments:  services.Investments,
		staking:      services.Staking,
		users:        services.Users,
		transactions: services.Transactions,
		settings:     services.Settings,
		hub:          hub,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger())
	router.Use(cors.New(corsConfig(cfg)))

	s.router = router
	s.registerRoutes()
	return s
}

func corsConfig(cfg *config.Config) cors.Config {
	conf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.AllowedOrigins == "" {
		conf.AllowAllOrigins = true
		conf.AllowCredentials = false
	} else {
		conf.AllowOrigins = strings.Split(cfg.AllowedOrigins, ",")
	}
	return conf
}

// requestID tags each request so log lines from one request correlate.
// An inbound X-Request-ID is honored; otherwise one is generated.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestId", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// requestLogger logs each request with logrus fields
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"requestId": c.GetString("requestId"),
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  time.Since(start).String(),
		}).Info("Request handled")
	}
}

// Start starts the API server
func (s *Server) Start(addr string) error {
	log.WithField("addr", addr).Info("Starting API server")
	return s.router.Run(addr)
}

// Router returns the gin engine, used by handler tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	api := s.router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", s.handleRegister)
		auth.POST("/login", s.handleLogin)
		auth.POST("/logout", s.handleLogout)
		auth.GET("/me", s.authRequired(), s.handleMe)
	}

	user := api.Group("", s.authRequired())
	{
		user.GET("/transactions", s.handleListTransactions)

		user.GET("/investments", s.handleListInvestments)
		user.POST("/investments", s.handleCreateInvestment)

		user.GET("/withdrawals", s.handleListWithdrawals)
		user.POST("/withdrawals", s.handleRequestWithdrawal)
		user.GET("/withdrawals/:id", s.handleGetWithdrawal)

		user.GET("/conversations", s.handleListConversations)
		user.POST("/conversations", s.handleStartConversation)
		user.GET("/chat/:conversationId/messages", s.handleListMessages)
		user.POST("/chat/:conversationId/messages", s.handlePostMessage)

		user.GET("/staking/plans", s.handleStakingPlans)
		user.GET("/staking/status", s.handleStakingStatus)
		user.GET("/staking/receiving-addresses", s.handleReceivingAddresses)
		user.POST("/staking/connect-wallet", s.handleConnectWallet)
		user.GET("/stakes", s.handleListStakes)
		user.POST("/stakes", s.handleCreateStake)
		user.POST("/stakes/:id/request-withdrawal", s.handleStakeWithdrawal)
	}

	admin := api.Group("/admin", s.authRequired(), s.adminRequired())
	{
		admin.GET("/withdrawals", s.handleAdminListWithdrawals)
		admin.PATCH("/withdrawals/:id", s.handleAdminPatchWithdrawal)
		admin.GET("/conversations", s.handleAdminListConversations)
		admin.GET("/users", s.handleAdminListUsers)
		admin.PATCH("/users/:id", s.handleAdminPatchUser)
		admin.POST("/users/:id/enable-staking", s.handleAdminEnableStaking)
		admin.GET("/stakes", s.handleAdminListStakes)
		admin.PATCH("/stakes/:id", s.handleAdminPatchStake)
		admin.GET("/settings", s.handleAdminGetSettings)
		admin.POST("/settings", s.handleAdminSetSetting)
	}

	// Realtime upgrade; authentication via token query parameter
	api.GET("/ws", s.authRequired(), func(c *gin.Context) {
		s.hub.ServeWS(c.Writer, c.Request)
	})
}
