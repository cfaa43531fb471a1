package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/model"
)

func (a *Api) dispatchRemindersHandler(w http.ResponseWriter, r *http.Request) {
	report, err := a.sender.Dispatch(r.Context(), time.Now())
	if err != nil {
		// a pass that cannot start means the lock or the store is unreachable
		if errors.Is(err, model.ErrPassInProgress) {
			a.domainErrorResponse(w, r, err)
		} else {
			a.unavailableResponse(w, r, err)
		}
		return
	}

	if err := a.writeJSON(w, http.StatusOK, report, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
