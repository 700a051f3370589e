// Package audio handles request-scoped staging of uploaded audio and its
// re-encoding into the format the transcription provider accepts.
package audio

import (
	"context"
	"fmt"
	"os/exec"
)

// Converter re-encodes an audio file at src into an mp3 at dst. A failure
// means the upload could not be decoded as audio.
type Converter interface {
	Convert(ctx context.Context, src, dst string) error
}

// FFmpegConverter shells out to ffmpeg for decoding and mp3 encoding. Codec
// internals stay a black box: any container/codec ffmpeg can read is
// accepted.
type FFmpegConverter struct {
	// Binary is the ffmpeg executable, "ffmpeg" when empty.
	Binary string
}

// NewFFmpegConverter creates a converter using the ffmpeg binary on PATH.
func NewFFmpegConverter() *FFmpegConverter {
	return &FFmpegConverter{}
}

// Convert decodes src and encodes it as mp3 at dst.
func (c *FFmpegConverter) Convert(ctx context.Context, src, dst string) error {
	bin := c.Binary
	if bin == "" {
		bin = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, bin, ffmpegArgs(src, dst)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w, output: %s", err, string(output))
	}
	return nil
}

// ffmpegArgs builds the ffmpeg invocation. -y must precede the output path
// or ffmpeg treats it as an ignorable trailing option.
func ffmpegArgs(src, dst string) []string {
	return []string{
		"-y",
		"-i", src,
		"-vn",
		"-acodec", "libmp3lame",
		"-q:a", "2",
		dst,
	}
}
