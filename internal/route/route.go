package route

import (
	health_handler "postman-backend/internal/app/handler/health-handler"
	log_handler "postman-backend/internal/app/handler/log-handler"
	proxy_handler "postman-backend/internal/app/handler/proxy-handler"
	relay_handler "postman-backend/internal/app/handler/relay-handler"
	log_repository "postman-backend/internal/app/repository/log-repository"
	log_service "postman-backend/internal/app/service/log-service"
	proxy_service "postman-backend/internal/app/service/proxy-service"
	relay_service "postman-backend/internal/app/service/relay-service"
	"postman-backend/internal/config"
	"postman-backend/internal/middleware"
	"postman-backend/internal/ratelimit"
	"postman-backend/internal/relayclient"

	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// InitRoutes builds the router. limiter may be nil, which disables rate limiting.
func InitRoutes(cfg *config.Config, db *gorm.DB, relayClient *relayclient.Client, limiter ratelimit.Limiter) *gin.Engine {

	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.HTTPLogger(),
		middleware.Metrics(),
	)

	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  addAllowedOrigins(cfg.Env, cfg.CORS.AllowedOrigins),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader, relay_handler.UpstreamStatusHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           1 * time.Hour,
	}))

	logRepo := log_repository.NewLogRepository(db)
	logService := log_service.NewLogService(logRepo)
	logHandler := log_handler.NewLogHandler(logService)

	relayService := relay_service.NewRelayService(logService, relayClient)
	relayHandler := relay_handler.NewRelayHandler(relayService)

	proxyService := proxy_service.NewProxyService(relayClient, cfg.Proxy.APIBase)
	proxyHandler := proxy_handler.NewProxyHandler(proxyService)

	healthHandler := health_handler.NewHealthHandler(logRepo)

	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	relayLimit := middleware.RelayRateLimit(limiter, cfg.Relay.RateLimit)

	apiRoute := router.Group("/api")
	{
		apiRoute.POST("/log", logHandler.SaveLog)
		apiRoute.GET("/log", logHandler.ListLogs)
		apiRoute.DELETE("/log/all", logHandler.DeleteAllLogs)
		apiRoute.GET("/log/:id", logHandler.GetLog)
		apiRoute.POST("/log/:id/replay", relayLimit, relayHandler.ReplayLog)

		apiRoute.POST("/request", relayLimit, relayHandler.SendRequest)
		apiRoute.POST("/proxy", proxyHandler.Forward)
	}

	return router
}

func addAllowedOrigins(env string, allowed []string) func(origin string) bool {
	return func(origin string) bool {
		// Allow local UIs on any port while developing
		if env == "development" {
			if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:") ||
				strings.HasPrefix(origin, "https://localhost:") {
				return true
			}
		}

		for _, domain := range allowed {
			if domain == "*" || origin == domain {
				return true
			}
		}
		return false
	}
}
