package apperr

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestConstructors_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"validation", Validation("bad input"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"missing field", MissingField("text"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"unprocessable audio", UnprocessableAudio(stderrors.New("boom")), ErrCodeUnprocessableAudio, http.StatusBadRequest},
		{"unauthorized", Unauthorized(""), ErrCodeUnauthorized, http.StatusUnauthorized},
		{"rate limited", RateLimited("10 per minute"), ErrCodeRateLimited, http.StatusTooManyRequests},
		{"upstream", Upstream("transcription", stderrors.New("boom")), ErrCodeUpstream, http.StatusInternalServerError},
		{"internal", Internal(stderrors.New("boom")), ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
		})
	}
}

func TestRateLimited_Reason(t *testing.T) {
	err := RateLimited("10 per minute")
	if !strings.Contains(err.Message, "10 per minute") {
		t.Errorf("expected reason in message, got %q", err.Message)
	}
}

func TestToResponse_SuppressesCause(t *testing.T) {
	err := Internal(stderrors.New("database exploded at line 42"))
	body, jerr := json.Marshal(err.ToResponse())
	if jerr != nil {
		t.Fatalf("marshal: %v", jerr)
	}
	if strings.Contains(string(body), "exploded") {
		t.Errorf("internal cause leaked into response: %s", body)
	}
	if !strings.Contains(string(body), "Internal server error") {
		t.Errorf("expected generic message, got %s", body)
	}
}

func TestAs_Unwrapping(t *testing.T) {
	inner := Validation("nope")
	wrapped := fmt.Errorf("handling request: %w", inner)

	appErr, ok := As(wrapped)
	if !ok {
		t.Fatal("expected As to find the AppError")
	}
	if appErr.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}

	if _, ok := As(stderrors.New("plain")); ok {
		t.Error("expected As to fail for a plain error")
	}
}

func TestError_IncludesCause(t *testing.T) {
	err := Upstream("paraphrase", stderrors.New("dial tcp: timeout"))
	if !strings.Contains(err.Error(), "dial tcp: timeout") {
		t.Errorf("expected cause in Error(), got %q", err.Error())
	}
	if !stderrors.Is(err, err.Cause) {
		t.Error("expected Unwrap to expose the cause")
	}
}
