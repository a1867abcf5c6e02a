package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tron-wallet-core/pkg/errno"
)

// Response 统一返回结构 {code, msg, data}
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Data    any    `json:"data"`
}

// Success 返回签名结果或地址。data 为 nil 时输出 {}
func Success(c *gin.Context, data any) {
	if data == nil {
		data = gin.H{}
	}
	write(c, errno.OK.Code, errno.OK.Message, data)
}

// Error 按 errno 码表输出错误。HTTP 状态码恒为 200，由 code 区分结果
func Error(c *gin.Context, err error) {
	code, msg := errno.Decode(err)
	write(c, code, msg, gin.H{})
}

func write(c *gin.Context, code int, msg string, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: msg,
		Data:    data,
	})
}
