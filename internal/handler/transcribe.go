package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voicenote/internal/apperr"
	"voicenote/internal/logger"
	"voicenote/internal/middleware"
)

// timestampLayout is the human-readable capture timestamp prefixed by the
// transcribe_with_time variant.
const timestampLayout = "2006-01-02 15:04:05"

// Transcribe handles POST /transcribe: stage the upload, re-encode it to
// mp3, submit it to the provider, and return the bare transcript.
func (h *Handlers) Transcribe(c *gin.Context) {
	h.transcribe(c, false)
}

// TranscribeWithTime handles POST /transcribe_with_time: same pipeline, with
// the response prefixed by a local capture timestamp line.
func (h *Handlers) TranscribeWithTime(c *gin.Context) {
	h.transcribe(c, true)
}

func (h *Handlers) transcribe(c *gin.Context, withTime bool) {
	reqID := middleware.GetRequestID(c)
	log := h.log.WithRequestID(reqID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.respondError(c, apperr.Validation("No file part in request").WithCause(err))
		return
	}
	if fileHeader.Filename == "" {
		h.respondError(c, apperr.Validation("No selected file"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}
	defer src.Close()

	staged, err := h.stager.Stage(reqID, fileHeader.Filename, src)
	if err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}
	// Cleanup runs on every exit path, including client disconnects.
	defer staged.Cleanup()

	log.Info("File staged", logger.Fields("path", staged.Path, "size", fileHeader.Size))

	ctx := c.Request.Context()

	if err := h.converter.Convert(ctx, staged.Path, staged.MP3Path); err != nil {
		h.respondError(c, apperr.UnprocessableAudio(err))
		return
	}
	log.Info("File converted to MP3")

	started := time.Now()
	transcript, err := h.transcriber.Transcribe(ctx, staged.MP3Path)
	if err != nil {
		h.respondError(c, apperr.Upstream("transcription", err))
		return
	}
	log.Info("Successfully transcribed audio",
		logger.DurationFields("transcription", time.Since(started)),
		logger.Fields(logger.FieldEndpoint, c.FullPath()))

	body := transcript
	if withTime {
		body = h.now().Format(timestampLayout) + "\n\n" + transcript
	}
	c.String(http.StatusOK, body)
}
