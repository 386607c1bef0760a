package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/dag"
	"github.com/matzehuels/flowcanvas/pkg/errors"
	"github.com/matzehuels/flowcanvas/pkg/layout"
	"github.com/matzehuels/flowcanvas/pkg/pipeline"
	"github.com/matzehuels/flowcanvas/pkg/render"
	"github.com/matzehuels/flowcanvas/pkg/workflow"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr  string  // listen address
	width float64 // initial viewport width in pixels
}

// serveCommand creates the serve command, which hosts the interactive viewer.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:  ":8080",
		width: pipeline.DefaultWidth,
	}

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the interactive workflow viewer over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", opts.addr, "listen address")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "initial viewport width in pixels")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, input string, opts *serveOpts) error {
	logger := loggerFromContext(cmd.Context())

	wf, g, _, err := pipeline.Load(pipeline.Options{Source: input, Logger: logger})
	if err != nil {
		return err
	}

	srv, err := newViewerServer(wf, g, input, opts.width, logger)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Shut down when the command context is cancelled (SIGINT/SIGTERM).
	go func() {
		<-cmd.Context().Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	printSuccess("Serving %s on http://localhost%s", input, opts.addr)
	logger.Info("listening", "addr", opts.addr, "nodes", g.NodeCount(), "edges", g.EdgeCount())

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// viewerServer holds the single-workflow viewer state. The engine is not safe
// for concurrent use so every handler takes the mutex.
type viewerServer struct {
	mu     sync.Mutex
	wf     *workflow.Workflow
	graph  *dag.Graph
	eng    *layout.Engine
	width  float64
	title  string
	logger *log.Logger
}

func newViewerServer(wf *workflow.Workflow, g *dag.Graph, source string, width float64, logger *log.Logger) (*viewerServer, error) {
	eng := layout.New(g, layout.DefaultParams())
	if err := eng.Relayout(false, width); err != nil {
		return nil, err
	}
	return &viewerServer{
		wf:     wf,
		graph:  g,
		eng:    eng,
		width:  width,
		title:  strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)),
		logger: logger,
	}, nil
}

func (s *viewerServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/workflow", s.handleWorkflow)
		r.Get("/layout", s.handleLayout)
		r.Post("/pin", s.handlePin)
		r.Post("/relayout", s.handleRelayout)
	})
	return r
}

// logRequests logs method, path, status and duration for each request.
func (s *viewerServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		s.logger.Debug("request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

func (s *viewerServer) handleIndex(w http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	page, err := render.RenderHTML(s.wf, s.graph, s.eng, s.width, render.HTMLOptions{
		Title: s.title,
		Live:  true,
	})
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *viewerServer) handleWorkflow(w http.ResponseWriter, req *http.Request) {
	s.writeJSON(w, http.StatusOK, s.wf)
}

// handleLayout recomputes positions for the requested viewport width and
// returns them. Pinned nodes keep their manual positions.
func (s *viewerServer) handleLayout(w http.ResponseWriter, req *http.Request) {
	width, err := parseWidth(req.URL.Query().Get("width"), s.width)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	s.width = width
	err = s.eng.Relayout(false, width)
	positions := s.eng.Positions()
	pinned := s.eng.Pinned()
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"positions": positions,
		"pinned":    pinned,
	})
}

// pinRequest is the body of POST /api/pin.
type pinRequest struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

func (s *viewerServer) handlePin(w http.ResponseWriter, req *http.Request) {
	var body pinRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode pin request"))
		return
	}

	s.mu.Lock()
	err := s.eng.Pin(body.ID, layout.Position{X: body.X, Y: body.Y})
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Debug("pinned node", "id", body.ID, "x", body.X, "y", body.Y)
	s.writeJSON(w, http.StatusOK, map[string]any{"pinned": body.ID})
}

// handleRelayout recomputes the full layout. With reset=true pinned
// positions are discarded first.
func (s *viewerServer) handleRelayout(w http.ResponseWriter, req *http.Request) {
	width, err := parseWidth(req.URL.Query().Get("width"), s.width)
	if err != nil {
		s.writeError(w, err)
		return
	}
	reset := req.URL.Query().Get("reset") == "true"

	s.mu.Lock()
	s.width = width
	err = s.eng.Relayout(reset, width)
	positions := s.eng.Positions()
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"positions": positions})
}

func parseWidth(raw string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	width, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidViewport, err, "parse width %q", raw)
	}
	return width, nil
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *viewerServer) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeNodeNotFound, errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidViewport, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeCycle:
		status = http.StatusConflict
	}

	var resp errorResponse
	resp.Error.Code = string(errors.GetCode(err))
	resp.Error.Message = errors.UserMessage(err)
	s.writeJSON(w, status, resp)
}

func (s *viewerServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}
