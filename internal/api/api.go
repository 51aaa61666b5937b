// Package api provides HTTP handlers and the main API server logic for CareerAI.
//
// It exposes RESTful endpoints for invoking generation flows and for managing
// the job postings, resumes, and generated documents the flows work from.
// The API integrates the flow engine, the GenAI provider adapter, and the
// store module.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexiou-dev/careerAI-sub001/internal/flow"
	"github.com/alexiou-dev/careerAI-sub001/internal/genai"
	"github.com/alexiou-dev/careerAI-sub001/internal/store"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Opts holds configuration options for the API server.
type Opts struct {
	Addr string
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// Server carries the modules the handlers need: the persistence layer and
// the flow engine. Handlers share nothing else.
type Server struct {
	store  store.Store
	engine *flow.Engine
}

// NewServer creates a Server over a store and a flow engine.
func NewServer(st store.Store, engine *flow.Engine) *Server {
	return &Server{store: st, engine: engine}
}

// Run builds the configured modules, registers the default flows, and serves
// the API until the listener fails. Flow registration happens here, before
// the listener starts, so the registry never sees a concurrent write.
func Run(storeOpts []store.Option, genaiOpts []genai.Option, apiOpts []Option) error {
	var cfg Opts
	for _, opt := range apiOpts {
		opt(&cfg)
	}
	addr := cfg.Addr
	if addr == "" {
		addr = DefaultAddr
	}

	st, err := store.New(storeOpts...)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer st.Close()

	client, err := genai.NewClient(genaiOpts...)
	if err != nil {
		return fmt.Errorf("failed to initialize GenAI client: %w", err)
	}

	registry := flow.NewRegistry()
	if err := flow.RegisterDefaults(registry); err != nil {
		return fmt.Errorf("failed to register flows: %w", err)
	}
	engine := flow.NewEngine(registry, client)

	s := NewServer(st, engine)
	slog.Info("CareerAI API running", "addr", addr, "flows", registry.Names())
	return http.ListenAndServe(addr, s.Routes())
}

// Routes builds the request multiplexer for all API endpoints.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/flows", s.flowsHandler)
	mux.HandleFunc("/api/flows/invoke", s.invokeHandler)
	mux.HandleFunc("/api/jobs", s.jobsHandler)
	mux.HandleFunc("/api/jobs/", s.jobHandler)
	mux.HandleFunc("/api/resumes", s.resumesHandler)
	mux.HandleFunc("/api/resumes/", s.resumeHandler)
	mux.HandleFunc("/api/documents", s.documentsHandler)
	mux.HandleFunc("/api/documents/generate", s.generateDocumentHandler)
	mux.HandleFunc("/health", s.healthHandler)
	return mux
}
