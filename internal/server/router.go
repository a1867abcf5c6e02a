package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tron-wallet-core/internal/handler"
	"tron-wallet-core/internal/handler/response"
	"tron-wallet-core/pkg/monitor"
)

// NewHTTPRouter 初始化并返回一个 Gin Engine
func NewHTTPRouter(tronHandler *handler.TronHandler) *gin.Engine {
	monitor.Init()

	r := gin.Default()
	r.Use(monitor.PrometheusMiddleware())

	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			response.Success(c, gin.H{"pong": true})
		})

		tron := api.Group("/tron")
		tron.POST("/sign", tronHandler.SignTx)
		tron.POST("/address", tronHandler.GetAddress)
	}

	return r
}
