package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

type resource[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint64) (*T, error)
	Create(ctx context.Context, v T) error
	Update(ctx context.Context, v T) error
	Delete(ctx context.Context, id uint64) error
}

type authAPI interface {
	Register(ctx context.Context, id uint64, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Health(ctx context.Context) (*client.Health, error)
}

// App holds the client session state. Login on the server is a stateless
// check, so the session is just the name of the last user who logged in.
type App struct {
	auth     authAPI
	tasks    resource[models.Task]
	services resource[models.Service]

	reader *bufio.Reader
	out    io.Writer
	user   string
}

func NewApp(c *client.HTTPClient, in io.Reader, out io.Writer) *App {
	return &App{
		auth:     c,
		tasks:    c.Tasks(),
		services: c.Services(),
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

func (a *App) isLoggedIn() bool {
	return a.user != ""
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.user
	}
	return "anonymous"
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}
