// Package handler implements the request pipeline behind every route:
// validation, temp-file lifecycle, external provider calls, audit writes,
// and response shaping.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voicenote/internal/apperr"
	"voicenote/internal/audio"
	"voicenote/internal/audit"
	"voicenote/internal/logger"
	"voicenote/internal/middleware"
	"voicenote/internal/provider"
)

// routeDirectory is returned by the index route and on 404.
var routeDirectory = map[string]string{
	"/":                        "GET - Service and route directory",
	"/transcribe":              "POST - Upload audio file for transcription",
	"/transcribe_with_time":    "POST - Transcription prefixed with a capture timestamp",
	"/paraphrase":              "POST - Paraphrase text",
	"/paraphrase_logs":         "GET - List paraphrase audit records",
	"/paraphrase_logs/summary": "GET - Paraphrase summary over the trailing N days",
}

// Deps are the collaborators injected into Handlers. Tests substitute stub
// providers and in-memory stores here.
type Deps struct {
	Log         *logger.Logger
	Transcriber provider.Transcriber
	Paraphraser provider.Paraphraser
	Stager      *audio.Stager
	Converter   audio.Converter
	Store       audit.Store
	// Now is the clock, time.Now when nil.
	Now func() time.Time
}

// Handlers holds the route handlers and their dependencies.
type Handlers struct {
	log         *logger.Logger
	transcriber provider.Transcriber
	paraphraser provider.Paraphraser
	stager      *audio.Stager
	converter   audio.Converter
	store       audit.Store
	now         func() time.Time
}

// New creates the Handlers from its dependencies.
func New(d Deps) *Handlers {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Handlers{
		log:         d.Log.WithComponent("handler"),
		transcriber: d.Transcriber,
		paraphraser: d.Paraphraser,
		stager:      d.Stager,
		converter:   d.Converter,
		store:       d.Store,
		now:         d.Now,
	}
}

// Index responds with the service banner and route directory.
func (h *Handlers) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Welcome to Voice Note Taker API",
		"endpoints": routeDirectory,
	})
}

// Health is the liveness probe.
func (h *Handlers) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// NotFound responds to unknown routes with the directory of valid ones.
func (h *Handlers) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":               "The requested URL was not found",
		"available_endpoints": routeDirectory,
	})
}

// respondError logs the failure with request id and endpoint, then writes
// the taxonomy-mapped JSON error. Causes stay in the log, never in the body.
func (h *Handlers) respondError(c *gin.Context, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		appErr = apperr.Internal(err)
	}

	fields := map[string]interface{}{
		logger.FieldRequestID: middleware.GetRequestID(c),
		logger.FieldEndpoint:  c.FullPath(),
		logger.FieldStatus:    appErr.HTTPStatus,
		logger.FieldError:     appErr.Error(),
	}
	if appErr.HTTPStatus >= 500 {
		h.log.Error("Request failed", fields)
	} else {
		h.log.Warn("Request failed", fields)
	}

	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
