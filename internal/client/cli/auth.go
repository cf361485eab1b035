package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

func (a *App) Register(ctx context.Context) error {
	id, err := GetUint(a.reader, "Enter user id", 64, a.out)
	if err != nil {
		a.printf("error: %v", err)
		return err
	}

	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		a.printf("error: %v", err)
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		a.printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, id, userName, password); err != nil {
		if errors.Is(err, client.ErrConflict) {
			a.printf("User %q is already registered", userName)
		} else {
			a.printf("Registration unsuccessful: %v", err)
		}
		return err
	}

	a.printf("User %q registered", userName)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		a.printf("error: %v", err)
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		a.printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	err = a.auth.Login(ctx, userName, password)
	switch {
	case err == nil:
		a.user = userName
		a.printf("Login successful")
		return nil
	case errors.Is(err, client.ErrInvalidCredentials), errors.Is(err, client.ErrUnauthorized):
		a.printf("Invalid username or password")
	case errors.Is(err, client.ErrUnavailable):
		a.printf("Server unavailable")
	default:
		a.printf("Login unsuccessful: %v", err)
	}
	return err
}

func (a *App) Logout(context.Context) error {
	a.user = ""
	a.printf("Logged out")
	return nil
}

func (a *App) Health(ctx context.Context) error {
	h, err := a.auth.Health(ctx)
	if err != nil {
		a.printf("Health check failed: %v", err)
		return err
	}
	a.printf("Server %s: %d tasks, %d services, %d users", h.Status, h.Records.Tasks, h.Records.Services, h.Records.Users)
	return nil
}
