package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/unrolled/render"
)

const (
	msgLoginOK        = "Login successful"
	msgBadCredentials = "Invalid username and/or password"
	msgUnknownUser    = "Invalid username or password"
)

type UserService interface {
	Register(ctx context.Context, id uint64, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (services.LoginResult, error)
}

type userHandler struct {
	users  UserService
	rd     *render.Render
	logger logging.Logger
}

func newUserHandler(us UserService, rd *render.Render, l logging.Logger) *userHandler {
	return &userHandler{users: us, rd: rd, logger: l}
}

func (h *userHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := readJSON(r.Body, &in); err != nil {
		h.rd.JSON(w, http.StatusBadRequest, err.Error())
		return
	}
	switch {
	case in.ID == nil:
		h.rd.JSON(w, http.StatusBadRequest, missingField("id").Error())
		return
	case in.Username == nil:
		h.rd.JSON(w, http.StatusBadRequest, missingField("username").Error())
		return
	case in.Password == nil:
		h.rd.JSON(w, http.StatusBadRequest, missingField("password").Error())
		return
	}

	_, err := h.users.Register(r.Context(), *in.ID, *in.Username, *in.Password)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, common.ErrorAlreadyExists):
		h.rd.JSON(w, http.StatusConflict, "user already exists")
	case errors.Is(err, common.ErrorValidation):
		h.rd.JSON(w, http.StatusBadRequest, err.Error())
	default:
		writeInternalError(h.rd, h.logger, w, r, err)
	}
}

func (h *userHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := readJSON(r.Body, &in); err != nil {
		h.rd.JSON(w, http.StatusBadRequest, err.Error())
		return
	}
	switch {
	case in.Username == nil:
		h.rd.JSON(w, http.StatusBadRequest, missingField("username").Error())
		return
	case in.Password == nil:
		h.rd.JSON(w, http.StatusBadRequest, missingField("password").Error())
		return
	}

	res, err := h.users.Login(r.Context(), *in.Username, *in.Password)
	if err != nil {
		writeInternalError(h.rd, h.logger, w, r, err)
		return
	}

	switch res {
	case services.LoginAccepted:
		h.rd.Text(w, http.StatusOK, msgLoginOK)
	case services.LoginWrongPassword:
		h.rd.Text(w, http.StatusBadRequest, msgBadCredentials)
	case services.LoginCredentialFault:
		h.logger.Warn(r.Context(), "login refused, stored credential unusable", "username", *in.Username)
		h.rd.Text(w, http.StatusUnauthorized, msgUnknownUser)
	default:
		h.rd.Text(w, http.StatusUnauthorized, msgUnknownUser)
	}
}
