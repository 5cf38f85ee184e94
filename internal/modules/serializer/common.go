package serializer

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-app/vitrine-api/internal/pkg/apperr"
)

// Response is the uniform JSON envelope of the API.
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// Err builds an error response; the raw error detail is exposed only
// outside release mode.
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// ParamErr
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

// AuthErr
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication required"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}

// FromError maps a taxonomy error to its transport status and writes
// the envelope. Handlers funnel every service/gateway failure through
// here so the status mapping lives in one place.
func FromError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	c.JSON(status, Err(status, apperr.Message(err), err))
}
