// file: utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Msg: msg, Data: data})
}

// Error 按真实 HTTP 状态码返回 {"error": msg}。
// 注意：提交 Flag 的"答错/重复"不是错误，不要走这里（见 challenge_controller）。
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
