package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Data    any    `json:"data,omitempty"`
	Details string `json:"details,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code: 0,
		Msg:  "success",
		Data: data,
	})
}

func Fail(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, Response{
		Code: httpStatus,
		Msg:  msg,
	})
}

// FailError 输出 BizError，包含 details
func FailError(c *gin.Context, be *BizError) {
	c.JSON(be.Status(), Response{
		Code:    be.Status(),
		Msg:     be.Msg,
		Details: be.Details,
	})
}
