package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/parallax/internal/logger"
)

const instructions = `Parallax serves multilingual articles in ja, en, zh-TW and zh-CN.
Use search to find articles in any locale, get_article to read one locale,
and compare to view two translations aligned sentence by sentence.`

// Server exposes the article index as MCP tools and resources.
type Server struct {
	ports   *Ports
	server  *mcp.Server
	metrics http.Handler
}

// NewServer registers tools and resources for ports. version is reported
// to clients during initialisation.
func NewServer(ports *Ports, version string) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if version == "" {
		version = "dev"
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "parallax", Version: version},
			&mcp.ServerOptions{Instructions: instructions},
		),
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// SetMetricsHandler serves h at /metrics on the HTTP transport.
func (s *Server) SetMetricsHandler(h http.Handler) {
	s.metrics = h
}

// Run serves over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler routes /healthz, /metrics (when set) and the streamable MCP
// transport at the root.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}
	mux.Handle("/", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil))
	return mux
}

// health is the /healthz body.
type health struct {
	Status   string    `json:"status"`
	IndexID  string    `json:"indexId,omitempty"`
	Articles int       `json:"articles"`
	Failed   int       `json:"failed"`
	BuiltAt  time.Time `json:"builtAt,omitzero"`
}

// handleHealth is 200 once an index snapshot exists and 503 before.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := health{Status: "ok"}
	code := http.StatusOK

	stats, err := s.ports.Catalogue.CorpusStats(r.Context())
	if err != nil {
		body.Status = err.Error()
		code = http.StatusServiceUnavailable
	} else {
		body.IndexID = stats.IndexID
		body.Articles = stats.TotalArticles
		body.Failed = stats.Failed
		body.BuiltAt = stats.BuiltAt
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Debug("write health response: %v", err)
	}
}

// RunHTTP serves Handler on addr until ctx is cancelled, then shuts down
// with a short grace period for in-flight requests.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("MCP HTTP shutdown: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
