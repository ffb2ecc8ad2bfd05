// Package httpapi exposes the config service over HTTP+JSON.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xtding233/equity-backend/internal/app"
	"github.com/xtding233/equity-backend/internal/equity"
)

const maxBodyBytes = 1 << 20

// Service is the application layer behind the handlers.
type Service interface {
	Validate(ctx context.Context, preset string, raw equity.Raw) error
	Resolve(ctx context.Context, preset string, raw equity.Raw) (equity.Resolved, error)
}

type Handlers struct {
	svc Service
	log *zap.SugaredLogger
}

func NewHandlers(svc Service, log *zap.SugaredLogger) *Handlers {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handlers{svc: svc, log: log}
}

// Validate handles POST /v1/validate.
func (h *Handlers) Validate(c *gin.Context) {
	raw, ok := h.decode(c)
	if !ok {
		return
	}
	if err := h.svc.Validate(c.Request.Context(), c.Query("preset"), raw); err != nil {
		h.fail(c, err)
		return
	}
	responder{c}.ok(gin.H{"valid": true})
}

// Resolve handles POST /v1/resolve.
func (h *Handlers) Resolve(c *gin.Context) {
	raw, ok := h.decode(c)
	if !ok {
		return
	}
	out, err := h.svc.Resolve(c.Request.Context(), c.Query("preset"), raw)
	if err != nil {
		h.fail(c, err)
		return
	}
	responder{c}.ok(out)
}

func (h *Handlers) Health(c *gin.Context) {
	responder{c}.ok(gin.H{"status": "ok"})
}

// decode reads the body as a JSON object. Numbers are kept as json.Number so
// integer checks see the literal the caller sent.
func (h *Handlers) decode(c *gin.Context) (equity.Raw, bool) {
	dec := json.NewDecoder(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		responder{c}.err(http.StatusBadRequest, "Request body must be a JSON object.")
		return nil, false
	}
	if dec.More() {
		responder{c}.err(http.StatusBadRequest, "Request body must hold a single JSON object.")
		return nil, false
	}
	return equity.Raw(raw), true
}

func (h *Handlers) fail(c *gin.Context, err error) {
	var ve *equity.ValidationError
	switch {
	case errors.As(err, &ve):
		responder{c}.invalid(http.StatusBadRequest, ve.Error(), ve.Field, ve.Value)
	case errors.Is(err, app.ErrUnknownPreset):
		responder{c}.err(http.StatusNotFound, err.Error())
	default:
		h.log.Errorw("config request failed", "path", c.FullPath(), "error", err)
		responder{c}.err(http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
