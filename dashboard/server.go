// Package dashboard serves the interactive price dashboard and its JSON API.
package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	"car-price-scraper/services"
	"car-price-scraper/storage"
	"car-price-scraper/utils"
)

// ErrNoData is reported when the corpus is missing, unreadable or empty.
var ErrNoData = errors.New("no data available")

// Server holds the loaded corpus table. The table is replaced wholesale on
// reload, so handlers only ever see a complete corpus.
type Server struct {
	logger *utils.Logger
	store  storage.CorpusReader

	mu      sync.RWMutex
	table   *services.Table
	loadErr error
}

// NewServer creates a Server and loads the corpus once. A failed load is not
// fatal; the dashboard reports "no data" until a reload succeeds.
func NewServer(logger *utils.Logger, store storage.CorpusReader) *Server {
	s := &Server{logger: logger, store: store}
	if err := s.Reload(); err != nil {
		logger.Warn("[dashboard] %v", err)
	}
	return s
}

// Reload re-reads the corpus from the store.
func (s *Server) Reload() error {
	corpus, err := s.store.Load()
	var table *services.Table
	switch {
	case err != nil:
		err = fmt.Errorf("%w: %v", ErrNoData, err)
	default:
		table = services.NewTable(corpus)
		if table.Len() == 0 {
			err = fmt.Errorf("%w: corpus has no listings", ErrNoData)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.table, s.loadErr = nil, err
		return err
	}
	s.table, s.loadErr = table, nil
	s.logger.Info("[dashboard] Loaded %d listings across %d brands", table.Len(), len(table.Brands()))
	return nil
}

func (s *Server) current() (*services.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table, s.loadErr
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(httprate.LimitByIP(120, time.Minute))

	r.Get("/", s.handlePage)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/brands", s.handleBrands)
		r.Get("/listings", s.handleListings)
		r.Get("/stats", s.handleStats)
		r.Post("/reload", s.handleReload)
	})

	return r
}
