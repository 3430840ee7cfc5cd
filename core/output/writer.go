package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fbz-tec/skytrack/internal/logger"
)

const (
	None = "none"
	GZIP = "gzip"
	ZIP  = "zip"
	ZSTD = "zstd"
	LZ4  = "lz4"
)

// Compressions lists the accepted compression names.
var Compressions = []string{None, GZIP, ZIP, ZSTD, LZ4}

// OutputConfig holds configuration for output file creation.
type OutputConfig struct {
	Path        string
	Compression string
}

// Writer is an output file; Path reports the name actually written,
// which carries the compression extension.
type Writer interface {
	io.WriteCloser
	Path() string
}

// CreateWriter creates the parent directory and opens the output file,
// wrapped in the configured compressor.
func CreateWriter(cfg OutputConfig) (Writer, error) {
	compression := NormalizeCompression(cfg.Compression)

	path, err := FinalPath(cfg.Path, compression)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating output directory: %w", err)
		}
	}

	switch compression {
	case None:
		return newFileWriter(path)
	case GZIP:
		return newGzipWriter(path)
	case ZIP:
		return newZipWriter(path, filepath.Base(cfg.Path))
	case ZSTD:
		return newZstdWriter(path)
	default:
		return newLz4Writer(path)
	}
}

// NormalizeCompression lower-cases and trims a compression name; empty means none.
func NormalizeCompression(compression string) string {
	c := strings.ToLower(strings.TrimSpace(compression))
	if c == "" {
		return None
	}
	return c
}

// FinalPath returns the file name that CreateWriter will produce.
func FinalPath(path, compression string) (string, error) {
	switch NormalizeCompression(compression) {
	case None:
		return path, nil
	case GZIP:
		return appendExtension(path, ".gz"), nil
	case ZIP:
		return fixExtension(path, ".zip"), nil
	case ZSTD:
		return appendExtension(path, ".zst"), nil
	case LZ4:
		return appendExtension(path, ".lz4"), nil
	default:
		return "", fmt.Errorf("unsupported compression type %q (valid: %s)", compression, strings.Join(Compressions, ", "))
	}
}

func appendExtension(path, ext string) string {
	if strings.HasSuffix(strings.ToLower(path), ext) {
		return path
	}
	return path + ext
}

// fixExtension swaps the last extension of path for ext.
func fixExtension(path, ext string) string {
	current := filepath.Ext(path)
	if strings.ToLower(current) != ext {
		path = path[:len(path)-len(current)] + ext
	}
	return path
}

// fileWriter owns an open file plus the encoder layers stacked on top of it.
// Layers are closed innermost first, then the file.
type fileWriter struct {
	io.Writer
	path    string
	file    *os.File
	layers  []io.Closer
	started time.Time
}

func (w *fileWriter) Path() string { return w.path }

func (w *fileWriter) Close() error {
	var err error
	for i := len(w.layers) - 1; i >= 0; i-- {
		if cerr := w.layers[i].Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if ferr := w.file.Close(); ferr != nil && err == nil {
		err = ferr
	}
	logger.Debug("Closed %s in %v", w.path, time.Since(w.started))
	return err
}

func createFile(path string) (*os.File, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating file: %w", err)
	}
	return file, nil
}
