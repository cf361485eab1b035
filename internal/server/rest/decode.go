package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/gorilla/mux"
)

// maxBodyBytes caps request bodies; every payload here is a few hundred bytes.
const maxBodyBytes = 1 << 20

var errTrailingData = errors.New("unexpected data after JSON body")

// readJSON decodes exactly one JSON value from r into dst, rejecting unknown
// fields.
func readJSON(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

func missingField(name string) error {
	return fmt.Errorf("missing required field %q", name)
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (uint64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// Input shapes use pointers so an absent field is told apart from a zero one.

type taskInput struct {
	ID        *uint64 `json:"id"`
	Name      *string `json:"name"`
	Completed *bool   `json:"completed"`
}

func decodeTask(r io.Reader) (models.Task, error) {
	var in taskInput
	if err := readJSON(r, &in); err != nil {
		return models.Task{}, err
	}
	switch {
	case in.ID == nil:
		return models.Task{}, missingField("id")
	case in.Name == nil:
		return models.Task{}, missingField("name")
	case in.Completed == nil:
		return models.Task{}, missingField("completed")
	}
	return models.Task{ID: *in.ID, Name: *in.Name, Completed: *in.Completed}, nil
}

type serviceInput struct {
	ID       *uint64  `json:"id"`
	Name     *string  `json:"name"`
	Price    *float32 `json:"price"`
	Duration *uint32  `json:"duration"`
}

func decodeService(r io.Reader) (models.Service, error) {
	var in serviceInput
	if err := readJSON(r, &in); err != nil {
		return models.Service{}, err
	}
	switch {
	case in.ID == nil:
		return models.Service{}, missingField("id")
	case in.Name == nil:
		return models.Service{}, missingField("name")
	case in.Price == nil:
		return models.Service{}, missingField("price")
	case in.Duration == nil:
		return models.Service{}, missingField("duration")
	}
	return models.Service{ID: *in.ID, Name: *in.Name, Price: *in.Price, Duration: *in.Duration}, nil
}

type registerInput struct {
	ID       *uint64 `json:"id"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// loginInput accepts the full user shape; id is ignored.
type loginInput struct {
	ID       *uint64 `json:"id"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}
