package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"voicenote/internal/auth"
	"voicenote/internal/config"
	"voicenote/internal/logger"
	"voicenote/internal/middleware"
	"voicenote/internal/ratelimit"
)

// RegisterOptions carries the cross-cutting collaborators for the route
// table.
type RegisterOptions struct {
	Verifier  *auth.Verifier
	Limiter   *ratelimit.Limiter
	RateLimit config.RateLimitConfig
	Log       *logger.Logger
}

// Register wires the middleware chain and all routes onto the engine. The
// chain is recovery → request-id → request logging, then per-route Basic
// auth followed by rate limiting keyed on the authenticated identity.
func Register(engine *gin.Engine, h *Handlers, opts RegisterOptions) {
	engine.Use(
		middleware.Recovery(opts.Log),
		middleware.RequestID(),
		middleware.RequestLogger(opts.Log),
	)
	engine.NoRoute(h.NotFound)
	engine.GET("/health", h.Health)

	global := []ratelimit.Budget{
		{Scope: "global", Name: "day", Limit: opts.RateLimit.RequestsPerDay, Window: 24 * time.Hour},
		{Scope: "global", Name: "hour", Limit: opts.RateLimit.RequestsPerHour, Window: time.Hour},
	}
	// withMinute adds an endpoint-scoped per-minute budget on top of the
	// global day/hour budgets.
	withMinute := func(scope string, limit int) []ratelimit.Budget {
		budgets := make([]ratelimit.Budget, 0, len(global)+1)
		budgets = append(budgets, global...)
		return append(budgets, ratelimit.Budget{
			Scope: scope, Name: "minute", Limit: limit, Window: time.Minute,
		})
	}

	authed := engine.Group("/", middleware.BasicAuth(opts.Verifier))

	authed.GET("", middleware.RateLimit(opts.Limiter, global...), h.Index)

	// Both transcription variants share one per-minute budget: they are the
	// same heavy operation.
	transcribeGate := middleware.RateLimit(opts.Limiter,
		withMinute("transcribe", opts.RateLimit.TranscribePerMinute)...)
	authed.POST("/transcribe", transcribeGate, h.Transcribe)
	authed.POST("/transcribe_with_time", transcribeGate, h.TranscribeWithTime)

	authed.POST("/paraphrase", middleware.RateLimit(opts.Limiter,
		withMinute("paraphrase", opts.RateLimit.ParaphrasePerMinute)...), h.Paraphrase)

	logsGate := middleware.RateLimit(opts.Limiter,
		withMinute("paraphrase_logs", opts.RateLimit.LogsPerMinute)...)
	authed.GET("/paraphrase_logs", logsGate, h.ParaphraseLogs)
	authed.GET("/paraphrase_logs/summary", logsGate, h.Summary)
}
