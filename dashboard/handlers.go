package dashboard

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"car-price-scraper/models"
	"car-price-scraper/services"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// listingResponse carries the brand, which the stored record leaves implicit.
type listingResponse struct {
	Brand string       `json:"brand"`
	Year  models.Year  `json:"year"`
	Model string       `json:"model"`
	Price models.Price `json:"price"`
}

type listingsResponse struct {
	Spec     models.FilterSpec `json:"spec"`
	Sort     string            `json:"sort"`
	Count    int               `json:"count"`
	Listings []listingResponse `json:"listings"`
}

type statsResponse struct {
	Sort string `json:"sort"`
	models.View
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	resp := errorResponse{Error: code}
	if err != nil {
		resp.Detail = err.Error()
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// tableOr503 returns the loaded table or writes the no-data response.
func (s *Server) tableOr503(w http.ResponseWriter, r *http.Request) *services.Table {
	table, err := s.current()
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, "no_data", err)
		return nil
	}
	return table
}

// query parses the filter and runs it, writing any error response itself.
func (s *Server) query(w http.ResponseWriter, r *http.Request) (models.View, bool) {
	table := s.tableOr503(w, r)
	if table == nil {
		return models.View{}, false
	}
	spec, err := parseFilterSpec(r.URL.Query(), table.DefaultSpec())
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_query", err)
		return models.View{}, false
	}
	return table.Query(spec), true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"ok": true, "data": false}
	if table, err := s.current(); err == nil {
		resp["data"] = true
		resp["brands"] = len(table.Brands())
		resp["listings"] = table.Len()
	}
	render.JSON(w, r, resp)
}

func (s *Server) handleBrands(w http.ResponseWriter, r *http.Request) {
	table := s.tableOr503(w, r)
	if table == nil {
		return
	}
	render.JSON(w, r, map[string][]string{"brands": table.Brands()})
}

func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	view, ok := s.query(w, r)
	if !ok {
		return
	}
	resp := listingsResponse{
		Spec:     view.Spec,
		Sort:     view.Spec.Sort.String(),
		Count:    len(view.Rows),
		Listings: make([]listingResponse, 0, len(view.Rows)),
	}
	for _, l := range view.Rows {
		resp.Listings = append(resp.Listings, listingResponse{Brand: l.Brand, Year: l.Year, Model: l.Model, Price: l.Price})
	}
	render.JSON(w, r, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	view, ok := s.query(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, statsResponse{Sort: view.Spec.Sort.String(), View: view})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(); err != nil {
		s.logger.Warn("[dashboard] Reload failed: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, ErrNoData) {
			status = http.StatusServiceUnavailable
		}
		respondError(w, r, status, "reload_failed", err)
		return
	}
	table, _ := s.current()
	render.JSON(w, r, map[string]any{"ok": true, "brands": len(table.Brands()), "listings": table.Len()})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Automotive Market Price Analytics"}

	table, err := s.current()
	if err != nil {
		data.NoData = err.Error()
		writePage(w, http.StatusOK, data, s.logger)
		return
	}

	spec, err := parseFilterSpec(r.URL.Query(), table.DefaultSpec())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data.fill(table, table.Query(spec))
	writePage(w, http.StatusOK, data, s.logger)
}
