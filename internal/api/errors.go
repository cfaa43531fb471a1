package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/marikeiske/datekeeper-plus/internal/model"
)

type errorEnvelope struct {
	Error interface{} `json:"error"`
}

func (a *Api) logError(r *http.Request, err error) {
	a.logger.Errorw("server error", "method", r.Method, "uri", r.URL.RequestURI(), "error", err)
}

func (a *Api) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	if err := a.writeJSON(w, status, errorEnvelope{Error: message}, nil); err != nil {
		a.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (a *Api) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.logError(r, err)

	message := "the server encountered a problem and could not process your request"
	a.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (a *Api) clientErrorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	a.logger.Debugw("client error", "status", status, "err", message)
	a.errorResponse(w, r, status, message)
}

func (a *Api) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	a.clientErrorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func (a *Api) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	a.clientErrorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (a *Api) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.clientErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (a *Api) unavailableResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Warnw("dependency unavailable", "uri", r.URL.RequestURI(), "err", err)
	a.errorResponse(w, r, http.StatusServiceUnavailable, "the service is temporarily unavailable")
}

// domainErrorResponse maps the core's sentinel errors to statuses. Anything
// unknown is a server error.
func (a *Api) domainErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrNoRecord):
		a.notFoundResponse(w, r)
	case errors.Is(err, model.ErrInvalidRule):
		a.clientErrorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, model.ErrInvalidWindow):
		a.badRequestResponse(w, r, err)
	case errors.Is(err, model.ErrPassInProgress):
		a.clientErrorResponse(w, r, http.StatusConflict, err.Error())
	default:
		a.serverErrorResponse(w, r, err)
	}
}
