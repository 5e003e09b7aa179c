package server

import (
	"encoding/json"
	"io"
	"net/http"

	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
)

// maxBodyBytes caps request bodies; every request is a few small fields.
const maxBodyBytes = 1 << 20

type errorBody struct {
	Code    rgerrors.Code `json:"code"`
	Message string         `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := rgerrors.GetCode(err)
	if code == "" {
		code = rgerrors.ErrCodeInternal
	}
	status := rgerrors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: rgerrors.UserMessage(err)})
}

// decode reads a JSON request body into v, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return rgerrors.Wrap(rgerrors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}
