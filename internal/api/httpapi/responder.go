package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type responder struct{ c *gin.Context }

func (r responder) err(status int, msg string) {
	r.c.JSON(status, gin.H{"error": msg})
}

// invalid reports a field-attributed validation failure.
func (r responder) invalid(status int, msg, field string, value any) {
	r.c.JSON(status, gin.H{"error": msg, "field": field, "value": value})
}

func (r responder) ok(payload any) {
	r.c.JSON(http.StatusOK, payload)
}
