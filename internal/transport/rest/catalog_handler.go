package rest

import (
	"context"
	"net/http"

	"github.com/sandevgo/sejarahbot/internal/core"
)

// Catalog is the administrative view of the fact collections.
type Catalog interface {
	AddEvent(ctx context.Context, e core.Event) (core.Event, error)
	AddFigure(ctx context.Context, f core.Figure) (core.Figure, error)
	ListEvents(ctx context.Context) ([]core.Event, error)
	ListFigures(ctx context.Context) ([]core.Figure, error)
}

type CatalogHandler struct {
	catalog Catalog
}

func NewCatalogHandler(catalog Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var e core.Event
	if err := decodeJSON(w, r, &e); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.catalog.AddEvent(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.catalog.ListEvents(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if events == nil {
		events = []core.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *CatalogHandler) CreateFigure(w http.ResponseWriter, r *http.Request) {
	var f core.Figure
	if err := decodeJSON(w, r, &f); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.catalog.AddFigure(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) ListFigures(w http.ResponseWriter, r *http.Request) {
	figures, err := h.catalog.ListFigures(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if figures == nil {
		figures = []core.Figure{}
	}
	writeJSON(w, http.StatusOK, figures)
}
