package server

import (
	"log/slog"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/UnknownOlympus/staffapi/internal/config"
	"github.com/UnknownOlympus/staffapi/internal/handler"
	"github.com/UnknownOlympus/staffapi/internal/metrics"
	"github.com/UnknownOlympus/staffapi/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const (
	messageRouteNotFound    = "Not Found"
	messageMethodNotAllowed = "Method Not Allowed"
)

// NewRouter mounts the employee resource under cfg.BasePath:
//
//	GET    {base}       list
//	GET    {base}/{id}  get one
//	POST   {base}       create (validated)
//	PUT    {base}/{id}  update (validated)
//	DELETE {base}/{id}  delete
//
// The returned handler also assigns request ids, answers CORS preflights and compresses
// large responses.
func NewRouter(
	log *slog.Logger,
	appMetrics *metrics.Metrics,
	employees *handler.EmployeeHandler,
	reporter *handler.ErrorReporter,
	cfg config.HTTPConfig,
) http.Handler {
	logging := middleware.Logging(log, appMetrics)
	validate := middleware.ValidateEmployee(reporter)

	router := mux.NewRouter()
	router.Use(logging)

	api := router
	if cfg.BasePath != "" {
		api = router.PathPrefix(cfg.BasePath).Subrouter()
	}

	for _, collection := range []string{"", "/"} {
		api.HandleFunc(collection, employees.List).Methods(http.MethodGet)
		api.Handle(collection, validate(http.HandlerFunc(employees.Create))).Methods(http.MethodPost)
	}
	api.HandleFunc("/{id}", employees.Get).Methods(http.MethodGet)
	api.Handle("/{id}", validate(http.HandlerFunc(employees.Update))).Methods(http.MethodPut)
	api.HandleFunc("/{id}", employees.Delete).Methods(http.MethodDelete)

	router.NotFoundHandler = logging(jsonError(log, http.StatusNotFound, messageRouteNotFound))
	router.MethodNotAllowedHandler = logging(jsonError(log, http.StatusMethodNotAllowed, messageMethodNotAllowed))
	api.MethodNotAllowedHandler = router.MethodNotAllowedHandler

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	return gziphandler.GzipHandler(corsHandler.Handler(middleware.RequestID(router)))
}

func jsonError(log *slog.Logger, status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteJSON(w, r, log, status, handler.ErrorResponse{Error: message})
	})
}
