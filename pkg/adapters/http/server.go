package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/hfsm/internal/logging"
	"github.com/aretw0/hfsm/internal/presentation/graph"
	"github.com/aretw0/hfsm/pkg/domain"
	"github.com/aretw0/hfsm/pkg/events"
	"github.com/aretw0/hfsm/pkg/ports"
)

// Server is a debug HTTP surface over running machines.
// It is also an event sink: entries published to it are streamed to SSE clients.
type Server struct {
	logger   *slog.Logger
	version  string
	gatherer prometheus.Gatherer

	mu          sync.RWMutex
	controllers map[string]ports.Controller

	Streams *StreamManager
}

var _ ports.EventSink = (*Server)(nil)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithVersion sets the version reported by /health.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithGatherer exposes g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// NewServer creates a server with no machines attached.
func NewServer(opts ...Option) *Server {
	s := &Server{
		logger:      logging.NewNop(),
		version:     "dev",
		controllers: make(map[string]ports.Controller),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// Add attaches a machine controller.
func (s *Server) Add(c ports.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controllers[c.ID()] = c
}

// Remove detaches a machine controller.
func (s *Server) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.controllers, id)
}

func (s *Server) controller(id string) (ports.Controller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.controllers[id]
	return c, ok
}

// Publish implements ports.EventSink by broadcasting each entry as JSON.
func (s *Server) Publish(_ context.Context, machineID string, entries []events.Entry) error {
	if s.Streams.Subscribers(machineID) == 0 {
		return nil
	}
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		s.Streams.Broadcast(machineID, string(data))
	}
	return nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.health)
	r.Get("/machines", s.listMachines)
	r.Route("/machines/{id}", func(r chi.Router) {
		r.Get("/", s.getMachine)
		r.Get("/trail", s.getTrail)
		r.Get("/graph", s.getGraph)
		r.Get("/events", s.subscribeEvents)
		r.Post("/triggers/{name}", s.postTrigger)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MachineSummary is the list view of a machine.
type MachineSummary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Tick     uint64   `json:"tick"`
	Enabled  bool     `json:"enabled"`
	Current  string   `json:"current,omitempty"`
	Path     string   `json:"path"`
	Triggers []string `json:"triggers"`
}

// EdgeView is one outgoing edge.
type EdgeView struct {
	Name string `json:"name,omitempty"`
	To   string `json:"to"`
}

// StateView is one state of a machine.
type StateView struct {
	Name        string     `json:"name"`
	Default     bool       `json:"default,omitempty"`
	Transitions []EdgeView `json:"transitions,omitempty"`
}

// MachineDetail is the full view of a machine.
type MachineDetail struct {
	MachineSummary
	States []StateView `json:"states"`
	Any    []EdgeView  `json:"any,omitempty"`
}

func summarize(c ports.Controller, m ports.Machine) MachineSummary {
	sum := MachineSummary{
		ID:       m.ID(),
		Name:     m.Name(),
		Tick:     m.Tick(),
		Enabled:  m.Enabled(),
		Path:     m.String(),
		Triggers: c.Triggers(),
	}
	if cur := m.Current(); cur != nil {
		sum.Current = m.StateName(cur)
	}
	return sum
}

func edgeViews(m domain.Inspector, edges []domain.TransitionMapping) []EdgeView {
	views := make([]EdgeView, 0, len(edges))
	for _, e := range edges {
		views = append(views, EdgeView{Name: e.Name, To: m.StateName(e.To)})
	}
	return views
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{
		"status":  "ok",
		"app":     "hfsm-http",
		"version": s.version,
	})
}

func (s *Server) listMachines(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	controllers := make([]ports.Controller, 0, len(s.controllers))
	for _, c := range s.controllers {
		controllers = append(controllers, c)
	}
	s.mu.RUnlock()

	list := make([]MachineSummary, 0, len(controllers))
	for _, c := range controllers {
		c.Inspect(func(m ports.Machine) {
			list = append(list, summarize(c, m))
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	writeJSON(w, s.logger, http.StatusOK, list)
}

func (s *Server) getMachine(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var detail MachineDetail
	c.Inspect(func(m ports.Machine) {
		detail.MachineSummary = summarize(c, m)
		def := domain.KeyOf(m.DefaultState())
		for _, st := range m.States() {
			detail.States = append(detail.States, StateView{
				Name:        m.StateName(st),
				Default:     domain.KeyOf(st) == def,
				Transitions: edgeViews(m, m.TransitionsFrom(st)),
			})
		}
		if anyEdges := m.AnyTransitions(); len(anyEdges) > 0 {
			detail.Any = edgeViews(m, anyEdges)
		}
	})
	writeJSON(w, s.logger, http.StatusOK, detail)
}

func (s *Server) getTrail(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var trail []events.Entry
	c.Inspect(func(m ports.Machine) {
		trail = m.Events().Trail()
	})
	if trail == nil {
		trail = []events.Entry{}
	}
	writeJSON(w, s.logger, http.StatusOK, trail)
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var out string
	c.Inspect(func(m ports.Machine) {
		out = graph.GenerateMermaid(m, graph.OverlayFrom(m))
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(out)); err != nil {
		s.logger.Error("graph response write failed", "error", err)
	}
}

func (s *Server) postTrigger(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	if err := c.Trigger(name); err != nil {
		if errors.Is(err, domain.ErrUnknownTrigger) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.logger.Error("trigger failed", "machine_id", c.ID(), "trigger", name, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.logger.Info("trigger queued", "machine_id", c.ID(), "trigger", name)
	writeJSON(w, s.logger, http.StatusAccepted, map[string]string{"trigger": name, "status": "queued"})
}

// subscribeEvents handles GET /machines/{id}/events (SSE).
func (s *Server) subscribeEvents(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(c.ID())
	defer cancel()

	s.logger.Info("SSE: client subscribed", "machine_id", c.ID())
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected", "machine_id", c.ID())
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (ports.Controller, bool) {
	id := chi.URLParam(r, "id")
	c, ok := s.controller(id)
	if !ok {
		http.Error(w, fmt.Sprintf("machine %q not found", id), http.StatusNotFound)
	}
	return c, ok
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
