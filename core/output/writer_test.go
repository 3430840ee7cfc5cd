package output

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const testData = "airline,flights\nDelta,120\nUnited,98\n"

func writeAll(t *testing.T, cfg OutputConfig, chunks ...string) string {
	t.Helper()
	writer, err := CreateWriter(cfg)
	if err != nil {
		t.Fatalf("CreateWriter() error = %v", err)
	}
	for _, c := range chunks {
		if _, err := writer.Write([]byte(c)); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return writer.Path()
}

func TestCreateWriterRoundTrip(t *testing.T) {
	tests := []struct {
		compression string
		wantSuffix  string
		decode      func(t *testing.T, path string) []byte
	}{
		{None, "report.csv", readPlain},
		{GZIP, "report.csv.gz", readGzip},
		{ZSTD, "report.csv.zst", readZstd},
		{LZ4, "report.csv.lz4", readLz4},
		{ZIP, "report.zip", readZipEntry("report.csv")},
	}

	for _, tt := range tests {
		t.Run(tt.compression, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "report.csv")
			got := writeAll(t, OutputConfig{Path: path, Compression: tt.compression}, testData)

			if !strings.HasSuffix(got, tt.wantSuffix) {
				t.Errorf("Path() = %q, want suffix %q", got, tt.wantSuffix)
			}
			want, _ := FinalPath(path, tt.compression)
			if got != want {
				t.Errorf("Path() = %q, FinalPath() = %q", got, want)
			}
			if content := tt.decode(t, got); string(content) != testData {
				t.Errorf("decoded content = %q, want %q", content, testData)
			}
		})
	}
}

func TestCreateWriterMakesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "nested", "out.txt")
	got := writeAll(t, OutputConfig{Path: path}, "x")

	if got != path {
		t.Errorf("Path() = %q, want %q", got, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}

func TestCreateWriterKeepsExistingExtension(t *testing.T) {
	tests := []struct {
		compression string
		file        string
	}{
		{GZIP, "data.csv.gz"},
		{ZSTD, "data.csv.ZST"},
		{LZ4, "data.csv.lz4"},
		{ZIP, "data.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.compression, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if got := writeAll(t, OutputConfig{Path: path, Compression: tt.compression}, "x"); got != path {
				t.Errorf("Path() = %q, want %q", got, path)
			}
		})
	}
}

func TestCreateWriterCompressionNames(t *testing.T) {
	tests := []struct {
		compression string
		wantErr     bool
	}{
		{"GZIP", false},
		{"  gzip  ", false},
		{"ZsTd", false},
		{"", false},
		{"NONE", false},
		{"bzip2", true},
	}

	for _, tt := range tests {
		t.Run(tt.compression, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.txt")
			writer, err := CreateWriter(OutputConfig{Path: path, Compression: tt.compression})
			if tt.wantErr {
				if err == nil {
					writer.Close()
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), "unsupported compression") {
					t.Errorf("error = %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			writer.Close()
		})
	}
}

func TestCreateWriterMultipleChunks(t *testing.T) {
	chunks := []string{"line1\n", "line2\n", "line3\n"}
	path := writeAll(t, OutputConfig{Path: filepath.Join(t.TempDir(), "lines.txt"), Compression: GZIP}, chunks...)

	if got := string(readGzip(t, path)); got != strings.Join(chunks, "") {
		t.Errorf("content = %q", got)
	}
}

func TestFixExtension(t *testing.T) {
	tests := []struct {
		input string
		ext   string
		want  string
	}{
		{"data", ".zip", "data.zip"},
		{"data.csv", ".zip", "data.zip"},
		{"data.csv.zip", ".zip", "data.csv.zip"},
		{"data.txt", ".bz2", "data.bz2"},
	}

	for _, tt := range tests {
		if got := fixExtension(tt.input, tt.ext); got != tt.want {
			t.Errorf("fixExtension(%q, %q) = %q, want %q", tt.input, tt.ext, got, tt.want)
		}
	}
}

func readPlain(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return b
}

func readGzip(t *testing.T, path string) []byte {
	t.Helper()
	r, err := gzip.NewReader(bytes.NewReader(readPlain(t, path)))
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("gzip read: %v", err)
	}
	return b
}

func readZstd(t *testing.T, path string) []byte {
	t.Helper()
	dec, err := zstd.NewReader(nil)
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer dec.Close()
	b, err := dec.DecodeAll(readPlain(t, path), nil)
	if err != nil {
		t.Fatalf("zstd decode: %v", err)
	}
	return b
}

func readLz4(t *testing.T, path string) []byte {
	t.Helper()
	b, err := io.ReadAll(lz4.NewReader(bytes.NewReader(readPlain(t, path))))
	if err != nil {
		t.Fatalf("lz4 read: %v", err)
	}
	return b
}

func readZipEntry(name string) func(t *testing.T, path string) []byte {
	return func(t *testing.T, path string) []byte {
		t.Helper()
		zr, err := zip.OpenReader(path)
		if err != nil {
			t.Fatalf("zip open: %v", err)
		}
		defer zr.Close()
		if len(zr.File) != 1 || zr.File[0].Name != name {
			t.Fatalf("zip entries = %v, want [%s]", zr.File, name)
		}
		rc, err := zr.File[0].Open()
		if err != nil {
			t.Fatalf("zip entry: %v", err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("zip read: %v", err)
		}
		return b
	}
}
