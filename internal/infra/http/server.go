package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"newsroom-agents/internal/domain/model"
	"newsroom-agents/internal/domain/ports/repository"
	"newsroom-agents/internal/orchestrator"
)

// Pinger is anything with a health probe: the pgx pool, the redis client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatusSource exposes the orchestrator snapshot without coupling the ops
// server to the orchestrator's lifecycle.
type StatusSource interface {
	Status() orchestrator.Status
}

// Server is the ops surface: liveness, metrics and the read-only views
// dashboards poll. It is not a product API.
type Server struct {
	port     int
	status   StatusSource
	articles repository.ArticleRepository
	probes   map[string]Pinger
	log      *zerolog.Logger
	server   *http.Server
}

func NewServer(port int, status StatusSource, articles repository.ArticleRepository, probes map[string]Pinger, logger *zerolog.Logger) *Server {
	l := logger.With().Str("component", "OpsServer").Logger()
	return &Server{
		port:     port,
		status:   status,
		articles: articles,
		probes:   probes,
		log:      &l,
	}
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
	}
	s.log.Info().Int("port", s.port).Msg("ops server listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler builds the route tree; split out so tests can drive it without
// binding a port.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/status", s.handleStatus)
	r.Get("/articles", s.handleArticles)
	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true
	for name, p := range s.probes {
		if err := p.Ping(ctx); err != nil {
			checks[name] = err.Error()
			healthy = false
		} else {
			checks[name] = "ok"
		}
	}
	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, checks)
		return
	}
	writeJSON(w, http.StatusOK, checks)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.status.Status())
}

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ArticleFilter{
		ReviewStatus: model.ReviewStatus(q.Get("status")),
		Category:     q.Get("category"),
		EnrichedOnly: q.Get("enriched") == "true",
		Limit:        100,
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		filter.Limit = n
	}

	articles, err := s.articles.List(r.Context(), nil, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("article listing failed")
		http.Error(w, "listing failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toArticleViews(articles))
}

// articleView is the dashboard projection of an article; raw content stays out.
type articleView struct {
	ID             string   `json:"id"`
	SourceURL      string   `json:"source_url"`
	Title          string   `json:"title"`
	Summary        *string  `json:"summary,omitempty"`
	SentimentLabel *string  `json:"sentiment_label,omitempty"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
	Category       *string  `json:"category,omitempty"`
	ReviewStatus   string   `json:"review_status"`
	ReviewNote     string   `json:"review_note,omitempty"`
}

func toArticleViews(articles []*model.Article) []articleView {
	out := make([]articleView, 0, len(articles))
	for _, a := range articles {
		out = append(out, articleView{
			ID:             a.ID,
			SourceURL:      a.SourceURL,
			Title:          a.Title,
			Summary:        a.Summary,
			SentimentLabel: a.SentimentLabel,
			SentimentScore: a.SentimentScore,
			Category:       a.Category,
			ReviewStatus:   string(a.ReviewStatus),
			ReviewNote:     a.ReviewNote,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
