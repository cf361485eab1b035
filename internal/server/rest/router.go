package rest

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/render"
	"github.com/urfave/negroni"
)

const metricsPath = "/metrics"

// Deps are the collaborators the HTTP layer talks to.
type Deps struct {
	Tasks    EntityStore[models.Task]
	Services EntityStore[models.Service]
	Users    UserService
	Stats    StatsSource
}

// NewRouter wires the routes and wraps them in the middleware chain:
// request id, access log, panic recovery, in-flight limiter, body size
// limit, CORS.
func NewRouter(cfg *config.Config, l logging.Logger, d Deps) http.Handler {
	rd := render.New(render.Options{})

	router := mux.NewRouter()
	router.Use(instrument)

	router.HandleFunc("/", home(rd)).Methods("GET")

	tasks := newEntityHandler(d.Tasks, decodeTask, cfg.StrictUpdate, rd, l)
	registerEntityRoutes(router, "/task", tasks)

	svcs := newEntityHandler(d.Services, decodeService, cfg.StrictUpdate, rd, l)
	registerEntityRoutes(router, "/service", svcs)

	users := newUserHandler(d.Users, rd, l)
	router.HandleFunc("/register", users.Register).Methods("POST")
	router.HandleFunc("/login", users.Login).Methods("POST")

	router.Handle("/health", newHealthHandler(d.Stats, rd, l)).Methods("GET")
	router.Handle(metricsPath, promhttp.Handler()).Methods("GET")

	n := negroni.New()
	n.Use(requestID())
	n.Use(accessLog(l))
	n.Use(recovery(l, rd))
	n.Use(limiter(cfg.MaxInFlight, rd, metricsPath))
	n.Use(bodyLimit(maxBodyBytes))
	n.UseHandler(cors(cfg.AllowedOriginPrefix)(router))
	return n
}

func registerEntityRoutes[T any](router *mux.Router, prefix string, h *entityHandler[T]) {
	router.HandleFunc(prefix, h.Create).Methods("POST")
	router.HandleFunc(prefix, h.List).Methods("GET")
	router.HandleFunc(prefix, h.Update).Methods("PUT")
	router.HandleFunc(prefix+"/{id}", h.Get).Methods("GET")
	router.HandleFunc(prefix+"/{id}", h.Delete).Methods("DELETE")
}

func cors(originPrefix string) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOriginValidator(func(origin string) bool {
			return origin == "null" || (originPrefix != "" && strings.HasPrefix(origin, originPrefix))
		}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE"}),
		handlers.AllowedHeaders([]string{"Authorization", "Accept", "Content-Type"}),
		handlers.MaxAge(3600),
	)
}
