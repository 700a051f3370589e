package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"voicenote/internal/logger"
)

// Stager persists uploads to uniquely named temporary files scoped to one
// request id, so concurrent requests never collide.
type Stager struct {
	dir string
	log *logger.Logger
}

// NewStager creates a Stager rooted at dir, creating it if needed.
func NewStager(dir string, log *logger.Logger) (*Stager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	return &Stager{
		dir: dir,
		log: log.WithComponent("stager"),
	}, nil
}

// Staged is one staged upload and its mp3 derivative. The owning handler
// must call Cleanup on every exit path.
type Staged struct {
	// Path is the staged copy of the original upload.
	Path string
	// MP3Path is where the re-encoded derivative is (or would be) written.
	MP3Path string

	log *logger.Logger
}

// Stage writes the upload to <dir>/upload_<requestID><ext>, keeping the
// declared filename's extension so ffmpeg can sniff the container. The
// request id must not contain path components: a hostile id would otherwise
// move the staged file outside the staging directory.
func (s *Stager) Stage(requestID, filename string, r io.Reader) (*Staged, error) {
	if requestID == "" || strings.ContainsAny(requestID, "/\\") || strings.Contains(requestID, "..") {
		return nil, fmt.Errorf("invalid request id %q", requestID)
	}
	path := filepath.Join(s.dir, "upload_"+requestID+safeExt(filename))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create staged file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("write staged file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("close staged file: %w", err)
	}

	return &Staged{
		Path:    path,
		MP3Path: path + ".mp3",
		log:     s.log,
	}, nil
}

// Cleanup removes the staged file and its derivative. Failures are logged at
// warn and never escalate into the primary result.
func (st *Staged) Cleanup() {
	for _, path := range []string{st.Path, st.MP3Path} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			st.log.Warn("Failed to remove staged file",
				logger.Fields("path", path, logger.FieldError, err.Error()))
		}
	}
}

// safeExt extracts the filename extension, rejecting anything that could
// escape the temp directory or confuse downstream tools.
func safeExt(filename string) string {
	ext := filepath.Ext(filepath.Base(filename))
	if len(ext) > 8 || strings.ContainsAny(ext, "/\\ ") {
		return ""
	}
	return ext
}
