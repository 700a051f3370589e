package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"voicenote/internal/apperr"
	"voicenote/internal/audit"
)

// timestampFormats are accepted for the start_time/end_time query
// parameters, most specific first.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParaphraseLogs handles GET /paraphrase_logs: list audit records in a time
// range as JSON (default) or human-readable text blocks.
func (h *Handlers) ParaphraseLogs(c *gin.Context) {
	var opts audit.QueryOptions

	if raw := c.Query("start_time"); raw != "" {
		t, err := parseTimestamp(raw)
		if err != nil {
			h.respondError(c, apperr.Validation("Invalid start_time format, expected RFC3339 or YYYY-MM-DD").WithCause(err))
			return
		}
		opts.Start = &t
	}
	if raw := c.Query("end_time"); raw != "" {
		t, err := parseTimestamp(raw)
		if err != nil {
			h.respondError(c, apperr.Validation("Invalid end_time format, expected RFC3339 or YYYY-MM-DD").WithCause(err))
			return
		}
		opts.End = &t
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.respondError(c, apperr.Validation("limit must be a positive integer"))
			return
		}
		opts.Limit = n
	}

	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "text" {
		h.respondError(c, apperr.Validation("format must be json or text"))
		return
	}

	records, err := h.store.Query(c.Request.Context(), opts)
	if err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}

	if format == "text" {
		c.String(http.StatusOK, formatRecordsText(records))
		return
	}
	c.JSON(http.StatusOK, records)
}

// Summary handles GET /paraphrase_logs/summary: aggregate counts and average
// text lengths over the trailing N days.
func (h *Handlers) Summary(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.respondError(c, apperr.Validation("days must be a positive integer"))
			return
		}
		days = n
	}

	since := h.now().AddDate(0, 0, -days)
	sum, err := h.store.Summarize(c.Request.Context(), since)
	if err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, summaryResponse{
		Days:    days,
		Summary: sum,
	})
}

type summaryResponse struct {
	Days int `json:"days"`
	audit.Summary
}

func parseTimestamp(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampFormats {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// formatRecordsText renders records as human-readable blocks; zero records
// yield an empty body.
func formatRecordsText(records []audit.Record) string {
	var sb strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&sb, "[%s] %s\n", rec.Timestamp.Format(time.RFC3339), rec.RequestID)
		fmt.Fprintf(&sb, "Original: %s\n", rec.OriginalText)
		fmt.Fprintf(&sb, "Paraphrased: %s\n\n", rec.ParaphrasedText)
	}
	return sb.String()
}
