package rest

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/unrolled/render"
)

const internalErrorMessage = "internal error"

// EntityStore is what the entity handlers need from a store collection.
type EntityStore[T any] interface {
	Insert(ctx context.Context, v T) error
	Get(id uint64) (T, bool, error)
	GetAll() ([]T, error)
	Update(ctx context.Context, v T) (bool, error)
	Delete(ctx context.Context, id uint64) (bool, error)
}

// entityHandler serves the five CRUD routes of one entity kind.
type entityHandler[T any] struct {
	store  EntityStore[T]
	decode func(io.Reader) (T, error)
	strict bool
	rd     *render.Render
	logger logging.Logger
}

func newEntityHandler[T any](s EntityStore[T], decode func(io.Reader) (T, error), strict bool, rd *render.Render, l logging.Logger) *entityHandler[T] {
	return &entityHandler[T]{
		store:  s,
		decode: decode,
		strict: strict,
		rd:     rd,
		logger: l,
	}
}

func (h *entityHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	v, err := h.decode(r.Body)
	if err != nil {
		h.rd.JSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.store.Insert(r.Context(), v); err != nil {
		h.internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *entityHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.rd.JSON(w, http.StatusBadRequest, err.Error())
		return
	}
	v, ok, err := h.store.Get(id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.rd.JSON(w, http.StatusOK, v)
}

func (h *entityHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.GetAll()
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if all == nil {
		all = []T{}
	}
	h.rd.JSON(w, http.StatusOK, all)
}

func (h *entityHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	v, err := h.decode(r.Body)
	if err != nil {
		h.rd.JSON(w, http.StatusBadRequest, err.Error())
		return
	}
	existed, err := h.store.Update(r.Context(), v)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if h.strict && !existed {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Delete answers 200 whether or not the id existed.
func (h *entityHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.rd.JSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.store.Delete(r.Context(), id); err != nil {
		h.internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *entityHandler[T]) internalError(w http.ResponseWriter, r *http.Request, err error) {
	writeInternalError(h.rd, h.logger, w, r, err)
}

func writeInternalError(rd *render.Render, l logging.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, common.ErrorStorePoisoned) {
		l.Error(r.Context(), "store unavailable", "path", r.URL.Path, "request_id", RequestIDFromContext(r.Context()))
	} else {
		l.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error(),
			"request_id", RequestIDFromContext(r.Context()))
	}
	rd.JSON(w, http.StatusInternalServerError, internalErrorMessage)
}
