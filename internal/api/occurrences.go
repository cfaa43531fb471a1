package api

import (
	"fmt"
	"net/http"

	"github.com/marikeiske/datekeeper-plus/internal/model"
)

func (a *Api) getUserOccurrencesHandler(w http.ResponseWriter, r *http.Request) {
	occurrences, ok := a.userOccurrences(w, r)
	if !ok {
		return
	}

	resp, _ := mapSlice(occurrences, mapToOccurrenceResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getEventOccurrencesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "eventID")
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	win, err := parseWindow(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	occurrences, err := a.eventsService.GetEventOccurrences(r.Context(), id, win.From, win.To)
	if err != nil {
		a.domainErrorResponse(w, r, fmt.Errorf("get occurrences: %w", err))
		return
	}

	resp, _ := mapSlice(occurrences, mapToOccurrenceResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

// userOccurrences writes the error response itself and reports false when
// the occurrences could not be produced.
func (a *Api) userOccurrences(w http.ResponseWriter, r *http.Request) ([]*model.Occurrence, bool) {
	user, err := userFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return nil, false
	}

	win, err := parseWindow(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return nil, false
	}

	occurrences, err := a.eventsService.GetOccurrences(r.Context(), model.OccurrencesFilter{
		UserID: user.ID,
		From:   win.From,
		To:     win.To,
	})
	if err != nil {
		a.domainErrorResponse(w, r, fmt.Errorf("get occurrences: %w", err))
		return nil, false
	}

	return occurrences, true
}
