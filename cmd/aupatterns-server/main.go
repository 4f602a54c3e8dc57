package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/lmittmann/tint"

	"github.com/zpuskas/aupatterns/pattern"
)

var logger *slog.Logger

// newServeMux wires the pattern API endpoints.
func newServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/counts", func(w http.ResponseWriter, r *http.Request) {
		logger.Info("handling", "method", r.Method, "path", r.URL.RequestURI())
		if _, err := pattern.CountsHandler(w, r); err != nil {
			logger.Warn("counts failed", "err", err)
		}
	})
	mux.HandleFunc("/api/validate", func(w http.ResponseWriter, r *http.Request) {
		logger.Info("handling", "method", r.Method, "path", r.URL.RequestURI())
		if _, err := pattern.ValidateHandler(w, r); err != nil {
			logger.Warn("validate failed", "err", err)
		}
	})
	mux.HandleFunc("/api/random", func(w http.ResponseWriter, r *http.Request) {
		logger.Info("handling", "method", r.Method, "path", r.URL.RequestURI())
		if _, err := pattern.RandomHandler(w, r); err != nil {
			logger.Warn("random failed", "err", err)
		}
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "aupatterns API:")
		fmt.Fprintln(w, "  GET /api/counts?side=N&points=DOTS")
		fmt.Fprintln(w, "  GET /api/validate?p=PATTERN&side=N")
		fmt.Fprintln(w, "  GET /api/random?length=K&side=N")
	})
	return mux
}

func main() {
	logger = slog.New(tint.NewHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Heroku environment port sensing
	port := os.Getenv("PORT")
	if port == "" {
		// running locally in dev mode
		port = "localhost:8080"
	} else {
		// running as a true server
		port = ":" + port
	}

	logger.Info("listening", "addr", port)
	if err := http.ListenAndServe(port, newServeMux()); err != nil {
		logger.Error("listener failure", "err", err)
		os.Exit(1)
	}
}
