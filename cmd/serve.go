package cmd

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fbz-tec/skytrack/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated charts, timeline and exports over HTTP",
	Long: `Starts a small web server listing the files of the charts and exports
directories. The interactive timeline opens directly in the browser.`,
	Example: `  skytrack serve
  skytrack serve --addr 127.0.0.1:9000 --charts-dir out/charts`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>SkyTrack Reports</title></head>
<body style="font-family: sans-serif; margin: 2em;">
<h1>SkyTrack Reports</h1>
{{range .}}<h2>{{.Title}}</h2>
{{if .Files}}<ul>
{{$prefix := .Prefix}}{{range .Files}}<li><a href="/{{$prefix}}/{{.}}">{{.}}</a></li>
{{end}}</ul>
{{else}}<p>No files yet. Run <code>skytrack</code> to generate them.</p>
{{end}}{{end}}</body>
</html>
`))

type listing struct {
	Title  string
	Prefix string
	Dir    string
	Files  []string
}

// listFiles returns the regular files of dir sorted by name; a missing
// directory yields no files.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// newReportRouter serves an index of both directories and the files themselves.
func newReportRouter(chartsDir, exportsDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		listings := []listing{
			{Title: "Charts", Prefix: "charts", Dir: chartsDir},
			{Title: "Exports", Prefix: "exports", Dir: exportsDir},
		}
		for i := range listings {
			files, err := listFiles(listings[i].Dir)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			listings[i].Files = files
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTemplate.Execute(w, listings); err != nil {
			logger.Error("Failed to render index: %v", err)
		}
	})

	r.Handle("/charts/*", http.StripPrefix("/charts/", http.FileServer(http.Dir(chartsDir))))
	r.Handle("/exports/*", http.StripPrefix("/exports/", http.FileServer(http.Dir(exportsDir))))
	return r
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadReportConfig(cmd)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           newReportRouter(filepath.Clean(cfg.ChartsDir), filepath.Clean(cfg.ExportsDir)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving %s and %s on http://%s", cfg.ChartsDir, cfg.ExportsDir, displayAddr(serveAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-cmd.Context().Done():
		logger.Info("Shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
