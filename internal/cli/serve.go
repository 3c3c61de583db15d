package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/termdag/pkg/errors"
	"github.com/matzehuels/termdag/pkg/graph"
	"github.com/matzehuels/termdag/pkg/observability"
)

// newServeCmd creates the serve command for running the HTTP render service.
// The service accepts graph documents and returns rendered diagrams, so the
// layout engine can back editors and dashboards without shelling out.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an HTTP render service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// renderRequest is the POST /render payload: a graph document plus the
// subset of layout options that make sense remotely.
type renderRequest struct {
	Graph       graph.File `json:"graph"`
	Format      string     `json:"format,omitempty"`        // text (default), dot, svg
	MinWidth    int        `json:"min_width,omitempty"`     // minimum node width
	HSpacing    int        `json:"hspacing,omitempty"`      // columns between nodes
	VSpacing    int        `json:"vspacing,omitempty"`      // rows between layers
	Feedback    string     `json:"feedback,omitempty"`      // below (default), above
	Unicode     bool       `json:"unicode,omitempty"`       // box-drawing glyphs
	MaxPerLayer int        `json:"max_per_layer,omitempty"` // layer capacity, 0 = unlimited
	Reduce      bool       `json:"reduce,omitempty"`        // drop redundant edges
}

// renderResponse is the POST /render result for text and dot formats.
// SVG responses are returned raw with an image/svg+xml content type.
type renderResponse struct {
	Output string `json:"output"`
	Rows   int    `json:"rows,omitempty"`
	Cols   int    `json:"cols,omitempty"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func runServe(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServeMux(logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newServeMux builds the HTTP routing table.
func newServeMux(logger *charmlog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(logger))

	r.Get("/healthz", handleHealth)
	r.Post("/render", handleRender)

	return r
}

// requestLogger tags every request with a UUID, attaches a scoped logger to
// the context, and records timing through the server hooks.
func requestLogger(logger *charmlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id := uuid.NewString()
			reqLogger := logger.With("request_id", id)
			ctx := withLogger(req.Context(), reqLogger)

			start := time.Now()
			observability.Server().OnRequest(ctx, req.Method, req.URL.Path)

			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			w.Header().Set("X-Request-ID", id)
			next.ServeHTTP(ww, req.WithContext(ctx))

			duration := time.Since(start)
			observability.Server().OnResponse(ctx, req.Method, req.URL.Path, ww.status, duration)
			reqLogger.Debugf("%s %s -> %d (%s)", req.Method, req.URL.Path, ww.status, duration.Round(time.Millisecond))
		})
	}
}

// statusWriter captures the response status for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleRender(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body renderRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	g, err := body.Graph.ToGraph()
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeInvalidGraph, err, "build graph"))
		return
	}

	opts, err := body.toOpts()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	data, err := renderGraph(ctx, g, opts)
	if err != nil {
		status := http.StatusInternalServerError
		switch apperrors.GetCode(err) {
		case apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidPlacement:
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	if opts.format == formatSVG {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	resp := renderResponse{Output: string(data)}
	if opts.format == formatText {
		lines := strings.Split(strings.TrimRight(resp.Output, "\n"), "\n")
		resp.Rows = len(lines)
		for _, line := range lines {
			if n := len([]rune(line)); n > resp.Cols {
				resp.Cols = n
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// toOpts validates the request options and fills in defaults matching the
// render command's flags.
func (r *renderRequest) toOpts() (*renderOpts, error) {
	opts := &renderOpts{
		format:      r.Format,
		minWidth:    r.MinWidth,
		hSpacing:    r.HSpacing,
		vSpacing:    r.VSpacing,
		feedback:    r.Feedback,
		unicode:     r.Unicode,
		maxPerLayer: r.MaxPerLayer,
		reduce:      r.Reduce,
	}
	if opts.format == "" {
		opts.format = formatText
	}
	if opts.feedback == "" {
		opts.feedback = placementBelow
	}
	if opts.minWidth <= 0 {
		opts.minWidth = 3
	}
	if opts.hSpacing <= 0 {
		opts.hSpacing = 3
	}
	if opts.vSpacing <= 0 {
		opts.vSpacing = 2
	}
	if err := validateFormat(opts.format); err != nil {
		return nil, err
	}
	if err := validatePlacement(opts.feedback); err != nil {
		return nil, err
	}
	return opts, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	})
}
