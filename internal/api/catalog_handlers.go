package api

import (
	"net/http"
	"strings"

	"github.com/digkill/cinexa/internal/catalog"
	"github.com/digkill/cinexa/internal/models"
)

var generationKinds = []models.GenerationKind{models.KindVideo, models.KindImage, models.KindThumbnail}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, catalog.Plans())
}

// handleListModels returns the models of one kind, or all kinds keyed by kind
// when the query is empty.
func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	kind := models.GenerationKind(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("kind"))))
	if kind == "" {
		all := make(map[models.GenerationKind][]models.ProviderModel, len(generationKinds))
		for _, k := range generationKinds {
			all[k] = catalog.Models(k)
		}
		s.writeJSON(w, http.StatusOK, all)
		return
	}
	list := catalog.Models(kind)
	if list == nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown kind"})
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleListOptions(w http.ResponseWriter, r *http.Request) {
	opts := catalog.AllOptions()
	if lang := strings.TrimSpace(r.URL.Query().Get("language")); lang != "" {
		opts.Voices = catalog.VoicesFor(lang)
	}
	s.writeJSON(w, http.StatusOK, opts)
}

// handleInspiration serves the showcase gallery. type may be ALL, VIDEO or
// IMAGE.
func (s *Server) handleInspiration(w http.ResponseWriter, r *http.Request) {
	kind := models.GenerationKind(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("type"))))
	switch kind {
	case "", "ALL":
		kind = ""
	case models.KindVideo, models.KindImage:
	default:
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown type"})
		return
	}
	s.writeJSON(w, http.StatusOK, catalog.Featured(kind))
}
