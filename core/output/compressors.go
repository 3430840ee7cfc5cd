package output

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/fbz-tec/skytrack/internal/logger"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const fileBufferSize = 256 * 1024

type flushCloser struct{ *bufio.Writer }

func (f flushCloser) Close() error {
	if err := f.Flush(); err != nil {
		return fmt.Errorf("error flushing buffer: %w", err)
	}
	return nil
}

func newFileWriter(path string) (Writer, error) {
	logger.Debug("Creating uncompressed output file: %s", path)
	file, err := createFile(path)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriterSize(file, fileBufferSize)
	return &fileWriter{Writer: buf, path: path, file: file, layers: []io.Closer{flushCloser{buf}}, started: time.Now()}, nil
}

func newGzipWriter(path string) (Writer, error) {
	logger.Debug("Creating gzip-compressed output file: %s", path)
	file, err := createFile(path)
	if err != nil {
		return nil, err
	}
	gz := gzip.NewWriter(file)
	return &fileWriter{Writer: gz, path: path, file: file, layers: []io.Closer{gz}, started: time.Now()}, nil
}

func newZipWriter(path, entryName string) (Writer, error) {
	logger.Debug("Creating zip-compressed output file: %s (entry %s)", path, entryName)
	file, err := createFile(path)
	if err != nil {
		return nil, err
	}
	zw := zip.NewWriter(file)
	entry, err := zw.Create(entryName)
	if err != nil {
		zw.Close()
		file.Close()
		return nil, fmt.Errorf("error creating zip entry: %w", err)
	}
	return &fileWriter{Writer: entry, path: path, file: file, layers: []io.Closer{zw}, started: time.Now()}, nil
}

func newZstdWriter(path string) (Writer, error) {
	logger.Debug("Creating Zstandard-compressed output file: %s", path)
	file, err := createFile(path)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("error creating zstd writer: %w", err)
	}
	return &fileWriter{Writer: enc, path: path, file: file, layers: []io.Closer{enc}, started: time.Now()}, nil
}

func newLz4Writer(path string) (Writer, error) {
	logger.Debug("Creating lz4-compressed output file: %s", path)
	file, err := createFile(path)
	if err != nil {
		return nil, err
	}
	lw := lz4.NewWriter(file)
	return &fileWriter{Writer: lw, path: path, file: file, layers: []io.Closer{lw}, started: time.Now()}, nil
}
