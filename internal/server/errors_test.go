package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&ErrEmailAlreadyExists{Email: "a@b.c"}, http.StatusConflict},
		{&ErrInvalidCredentials{}, http.StatusUnauthorized},
		{&ErrNotFound{Resource: "resume", ID: uuid.New()}, http.StatusNotFound},
		{&ErrForbidden{Resource: "resume"}, http.StatusForbidden},
		{&ErrValidation{Field: "email", Message: "required"}, http.StatusBadRequest},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "err=%v", tt.err)
	}
}

func TestWriteError_JSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	id := uuid.New()
	writeError(rec, &ErrNotFound{Resource: "resume", ID: id})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "resume not found")
	assert.Contains(t, body.Error, id.String())
}
