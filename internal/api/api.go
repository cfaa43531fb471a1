package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/marikeiske/datekeeper-plus/internal/database"
	"github.com/marikeiske/datekeeper-plus/internal/model"
	"go.uber.org/zap"
)

type Api struct {
	handler http.Handler
	logger  *zap.SugaredLogger

	db            database.PGX
	users         userRepository
	eventsService eventsService
	sender        dispatcher
}

type userRepository interface {
	GetUserByID(ctx context.Context, q database.Queryable, id string) (*model.User, error)
}

type eventsService interface {
	GetOccurrences(ctx context.Context, filter model.OccurrencesFilter) ([]*model.Occurrence, error)
	GetEventOccurrences(ctx context.Context, id string, from, to time.Time) ([]*model.Occurrence, error)
}

type dispatcher interface {
	Dispatch(ctx context.Context, now time.Time) (*model.DispatchReport, error)
}

// NewApi builds the HTTP handler. db may be nil when the service runs on the
// in-memory store.
func NewApi(
	logger *zap.SugaredLogger,
	db database.PGX,
	users userRepository,
	eventsService eventsService,
	sender dispatcher,
) (*Api, error) {
	a := &Api{
		logger:        logger,
		db:            db,
		users:         users,
		eventsService: eventsService,
		sender:        sender,
	}
	a.setupHandler()

	return a, nil
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", a.healthcheckHandler)

	r.With(a.userCtx).Route("/users/{userID}", func(r chi.Router) {
		r.Get("/", a.getUserHandler)
		r.Get("/occurrences", a.getUserOccurrencesHandler)
		r.Get("/calendar.ics", a.getUserCalendarHandler)
	})

	r.Get("/events/{eventID}/occurrences", a.getEventOccurrencesHandler)

	r.Post("/reminders/dispatch", a.dispatchRemindersHandler)

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func (a *Api) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	if a.db != nil {
		if err := a.db.Ping(r.Context()); err != nil {
			a.unavailableResponse(w, r, err)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}
