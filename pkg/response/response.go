package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the transport-level envelope for non-GraphQL replies (request
// shape errors, health). GraphQL responses bypass it and use {data, errors}.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: msg})
}

func InternalError(c *gin.Context, err error) {
	_ = err // logged by callers; never echoed to the client
	c.JSON(http.StatusInternalServerError, Response{Code: http.StatusInternalServerError, Message: "internal error"})
}
