package rest

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/store"
	"github.com/unrolled/render"
)

type StatsSource interface {
	Stats() (store.Stats, error)
}

// Health is the body of GET /health.
type Health struct {
	Status  string       `json:"status"`
	Records *store.Stats `json:"records,omitempty"`
}

type healthHandler struct {
	stats  StatsSource
	rd     *render.Render
	logger logging.Logger
}

func newHealthHandler(s StatsSource, rd *render.Render, l logging.Logger) *healthHandler {
	return &healthHandler{stats: s, rd: rd, logger: l}
}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	st, err := h.stats.Stats()
	if err != nil {
		writeInternalError(h.rd, h.logger, w, r, err)
		return
	}
	h.rd.JSON(w, http.StatusOK, Health{Status: "OK", Records: &st})
}

func home(rd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		rd.Text(w, http.StatusOK, "Hello World!")
	}
}
