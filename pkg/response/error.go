package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BizError 业务错误，Code 即 HTTP 状态码
type BizError struct {
	Code    int
	Msg     string
	Details string
}

func (e *BizError) Error() string {
	if e.Details != "" {
		return e.Msg + ": " + e.Details
	}
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

// WithDetails 附带底层错误信息，供排查使用
func (e *BizError) WithDetails(err error) *BizError {
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

// Status 非法状态码一律按 500 处理
func (e *BizError) Status() int {
	if e.Code < 400 || e.Code > 599 {
		return http.StatusInternalServerError
	}
	return e.Code
}

func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				Fail(c, http.StatusInternalServerError, "internal server error")
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			if be, ok := err.(*BizError); ok {
				Fail(c, be.Status(), be.Msg)
			} else {
				Fail(c, http.StatusInternalServerError, err.Error())
			}
			c.Abort()
		}
	}
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code: httpStatus,
		Msg:  msg,
		Data: nil,
	})
}
