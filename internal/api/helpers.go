package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/marikeiske/datekeeper-plus/internal/config"
)

func (a *Api) writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

// readIDParam returns the URL parameter in canonical UUID form.
func readIDParam(r *http.Request, name string) (string, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return "", fmt.Errorf("invalid %s", name)
	}

	return id.String(), nil
}

type window struct {
	From time.Time
	To   time.Time
}

func parseWindow(r *http.Request) (*window, error) {
	var err error
	res := &window{}

	v := r.URL.Query().Get("from")
	if v == "" {
		return nil, errors.New("from must be provided")
	}
	res.From, err = time.Parse(dateTimeFormat, v)
	if err != nil {
		return nil, fmt.Errorf("invalid time format: %w", err)
	}

	v = r.URL.Query().Get("to")
	if v == "" {
		return nil, errors.New("to must be provided")
	}
	res.To, err = time.Parse(dateTimeFormat, v)
	if err != nil {
		return nil, fmt.Errorf("invalid time format: %w", err)
	}

	if res.To.Before(res.From) {
		return nil, errors.New("to must not be before from")
	}
	if max := config.MaxWindow(); max > 0 && res.To.Sub(res.From) > max {
		return nil, fmt.Errorf("window must not be longer than %v", max)
	}

	return res, nil
}

func mapSlice[A any, B any](from []A, mapFn func(A) (B, error)) ([]B, error) {
	res := make([]B, len(from))
	for i, el := range from {
		var err error
		res[i], err = mapFn(el)
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}
