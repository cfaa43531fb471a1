package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/marikeiske/datekeeper-plus/internal/model"
)

type contextKey string

const contextKeyUser = contextKey("user")

var errCantRetrieveUser = errors.New("can't retrieve user")

func (a *Api) userCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := readIDParam(r, "userID")
		if err != nil {
			a.notFoundResponse(w, r)
			return
		}

		user, err := a.users.GetUserByID(r.Context(), a.db, id)
		if err != nil {
			switch {
			case errors.Is(err, model.ErrNoRecord):
				a.notFoundResponse(w, r)
			default:
				a.serverErrorResponse(w, r, fmt.Errorf("get user: %w", err))
			}
			return
		}

		userCtx := context.WithValue(r.Context(), contextKeyUser, user)
		next.ServeHTTP(w, r.WithContext(userCtx))
	})
}

func userFromContext(r *http.Request) (*model.User, error) {
	user, ok := r.Context().Value(contextKeyUser).(*model.User)
	if !ok {
		return nil, errCantRetrieveUser
	}
	return user, nil
}
