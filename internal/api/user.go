package api

import (
	"net/http"
)

func (a *Api) getUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	resp, _ := mapToUserResp(user)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
