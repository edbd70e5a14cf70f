package controller

import (
	"net/http"

	apperrors "go-tawk/pkg/errors"

	"github.com/gin-gonic/gin"
)

func writeData(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data, "message": message})
}

func writeError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	c.JSON(code.HTTPStatus(), gin.H{"status": "error", "code": code, "message": apperrors.MessageOf(err)})
}
