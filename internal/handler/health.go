package handler

import (
	"github.com/gin-gonic/gin"

	"tron-wallet-core/internal/handler/response"
)

// HealthCheck 返回服务状态
func HealthCheck(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "UP",
		"service": "tron-signer",
	})
}
