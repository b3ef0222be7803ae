package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/config"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/diet"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/metrics"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/planner"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/lp"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/output"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RequestIDHeader carries the request ID back to the client.
const RequestIDHeader = "X-Request-Id"

const shutdownTimeout = 5 * time.Second

type handler struct {
	logger        *zap.Logger
	engine        lp.Engine
	maxUploadSize int64
	concurrency   int
	version       string
}

// NewHandler constructs the HTTP handler that serves the solve API. A nil cfg
// selects DefaultConfig; a nil engine selects cfg.Engine().
func NewHandler(logger *zap.Logger, engine lp.Engine, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if engine == nil {
		engine = cfg.Engine()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		engine:        engine,
		maxUploadSize: cfg.UploadSizeBytes(),
		concurrency:   cfg.Concurrency,
		version:       trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestID,
	)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/solve", h.handleSolve)
		r.Get("/version", h.handleVersion)
	})
	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return r
}

// requestID assigns a UUID to every request that does not already carry one
// and stores it where middleware.GetReqID can find it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type solveResponse struct {
	RequestID string          `json:"requestId"`
	Scenarios []output.Report `json:"scenarios"`
	Warnings  []string        `json:"warnings,omitempty"`
	Duration  string          `json:"duration"`
}

func (h *handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSolve"
	start := time.Now()
	reqID := middleware.GetReqID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	problem, err := h.readProblem(r)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	conf, err := config.LoadConfigurationFromReader(bytes.NewReader(problem))
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	warnings := conf.ValidateConfiguration()

	logger := h.logger.With(zap.String("requestId", reqID))
	runner, err := planner.NewRunner(logger, h.engine, conf)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, err.Error(), op)
		return
	}
	runner.Concurrency = h.concurrency

	results, err := runner.Run(r.Context())
	if err != nil {
		status := http.StatusBadRequest
		if kind := diet.ErrorKind(err); kind == "other" {
			status = http.StatusInternalServerError
		}
		h.respondErrorWithOp(w, r, status, err.Error(), op)
		return
	}

	elapsed := time.Since(start)
	response := solveResponse{
		RequestID: reqID,
		Scenarios: output.BuildReports(results),
		Warnings:  warnings,
		Duration:  elapsed.String(),
	}

	logger.Info("problem solved",
		zap.String("op", op),
		zap.Int("scenarios", len(response.Scenarios)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

// readProblem returns the posted problem file, either as the multipart field
// "file" or as the raw request body.
func (h *handler) readProblem(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, fmt.Errorf("missing problem definition")
		}
		return data, nil
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to parse upload: %v", err)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing problem file")
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.readProblem"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return nil, fmt.Errorf("failed to read problem file: %v", err)
	}
	return buf.Bytes(), nil
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	engine := ""
	if h.engine != nil {
		engine = h.engine.Name()
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
		"engine":  engine,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("solve request failed",
		zap.String("op", op),
		zap.String("requestId", middleware.GetReqID(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
	}
}

// Serve listens on cfg.Address and blocks until ctx is canceled, then shuts
// the server down gracefully.
func Serve(ctx context.Context, logger *zap.Logger, cfg *Config, h http.Handler) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	eg, egctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: h,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		logger.Info("starting server",
			zap.String("op", "server.Serve"),
			zap.String("address", cfg.Address),
			zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
			zap.Int("concurrency", cfg.Concurrency),
			zap.Float64("tolerance", cfg.Tolerance),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down server", zap.String("op", "server.Serve"))
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
