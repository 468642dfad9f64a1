package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// maxUploadBytes bounds the multipart form held in memory.
const maxUploadBytes = 32 << 20

type server struct {
	fixture *analyticsResponse // nil computes from the upload
	logger  *slog.Logger
}

func newHandler(s *server) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/customer-analytics", s.handleAnalytics).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(logRequests(s.logger, router))
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.logger.Warn("bad multipart body", slog.Any("error", err))
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "multipart form with field 'file' is required"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "field 'file' is required"})
		return
	}
	defer file.Close()

	if s.fixture != nil {
		s.logger.Info("serving fixture", slog.String("file", header.Filename))
		writeJSON(w, http.StatusOK, s.fixture)
		return
	}

	res, err := analyze(file)
	if err != nil {
		var bad inputError
		if !errors.As(err, &bad) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
			return
		}
		s.logger.Info("rejected upload", slog.String("file", header.Filename), slog.String("reason", string(bad)))
		// the service reports unusable input in a 200 body
		writeJSON(w, http.StatusOK, map[string]string{"error": string(bad)})
		return
	}
	s.logger.Info("analysed upload",
		slog.String("file", header.Filename),
		slog.Int("months", len(res.Months)),
		slog.Int("anomalies", len(res.Anomalies)))
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func logRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rw.status),
			slog.String("request_id", r.Header.Get("X-Request-ID")),
			slog.Duration("duration", time.Since(start)))
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
