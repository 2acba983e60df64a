package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	userID uuid.UUID
	err    error
	got    string
}

func (f *fakeValidator) ValidateToken(tokenString string) (uuid.UUID, error) {
	f.got = tokenString
	return f.userID, f.err
}

func runAuth(t *testing.T, validator TokenValidator, header string) (*httptest.ResponseRecorder, uuid.UUID) {
	t.Helper()

	var gotUserID uuid.UUID
	handler := Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserID(r)
		require.NoError(t, err)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, gotUserID
}

func TestAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &fakeValidator{userID: userID}

	rec, gotUserID := runAuth(t, validator, "Bearer good-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "good-token", validator.got)
	assert.Equal(t, userID, gotUserID)
}

func TestAuth_BearerIsCaseInsensitive(t *testing.T) {
	rec, _ := runAuth(t, &fakeValidator{userID: uuid.New()}, "bearer good-token")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_MissingHeader(t *testing.T) {
	rec, _ := runAuth(t, &fakeValidator{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"good-token", "Basic abc", "Bearer", "Bearer a b"} {
		rec, _ := runAuth(t, &fakeValidator{userID: uuid.New()}, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header=%q", header)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	validator := &fakeValidator{err: fmt.Errorf("bad signature")}
	rec, _ := runAuth(t, validator, "Bearer tampered")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)
}

func TestWithUserID(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserID(req.Context(), userID))

	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}
