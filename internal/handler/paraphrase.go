package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"voicenote/internal/apperr"
	"voicenote/internal/audit"
	"voicenote/internal/logger"
	"voicenote/internal/middleware"
	"voicenote/internal/validation"
)

type paraphraseRequest struct {
	Text string `json:"text" validate:"required"`
}

// Paraphrase handles POST /paraphrase: submit the text to the language-model
// provider, record the transaction in the audit store, and return both the
// original and the paraphrased text.
func (h *Handlers) Paraphrase(c *gin.Context) {
	reqID := middleware.GetRequestID(c)
	log := h.log.WithRequestID(reqID)

	var req paraphraseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Validation("Request must be JSON with a text field").WithCause(err))
		return
	}
	if err := validation.Validate(req); err != nil {
		h.respondError(c, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.respondError(c, apperr.MissingField("text"))
		return
	}

	paraphrased, err := h.paraphraser.Paraphrase(c.Request.Context(), req.Text)
	if err != nil {
		h.respondError(c, apperr.Upstream("paraphrase", err))
		return
	}
	log.Info("Successfully received paraphrase response")

	// The paraphrase already succeeded: an audit write failure is logged
	// but never fails the response.
	rec := audit.Record{
		Timestamp:       h.now(),
		RequestID:       reqID,
		OriginalText:    req.Text,
		ParaphrasedText: paraphrased,
	}
	if err := h.store.Append(c.Request.Context(), rec); err != nil {
		log.Error("Failed to record paraphrase", logger.ErrorFields("audit_append", err))
	} else {
		log.Info("Paraphrase result recorded")
	}

	c.String(http.StatusOK, req.Text+"\n\n"+paraphrased)
}
