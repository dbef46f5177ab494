package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wanderly-gateway/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newIdentityServer(t *testing.T, status int, body string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v1/accounts:lookup", r.URL.Path)
		assert.Equal(t, "web-key", r.URL.Query().Get("key"))

		var req map[string]string
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &req))
		assert.NotEmpty(t, req["idToken"])

		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestFirebaseVerifier_Verify(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantUID   string
		wantError error
	}{
		{"valid token", http.StatusOK, `{"users":[{"localId":"uid-123"}]}`, "uid-123", nil},
		{"lookup rejects token", http.StatusBadRequest, `{"error":{"message":"INVALID_ID_TOKEN"}}`, "", entity.ErrInvalidToken},
		{"no users", http.StatusOK, `{"users":[]}`, "", entity.ErrInvalidToken},
		{"missing localId", http.StatusOK, `{"users":[{"email":"a@b.c"}]}`, "", entity.ErrInvalidToken},
		{"garbage body", http.StatusOK, `not json`, "", entity.ErrInvalidToken},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, calls := newIdentityServer(t, tc.status, tc.body)
			v := NewFirebaseVerifier(srv.URL+"/v1", "web-key", zap.NewNop())

			caller, err := v.Verify(context.Background(), "Bearer some-token")
			assert.Equal(t, 1, *calls)
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				assert.Nil(t, caller)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantUID, caller.UID)
		})
	}
}

func TestFirebaseVerifier_MissingTokenSkipsLookup(t *testing.T) {
	srv, calls := newIdentityServer(t, http.StatusOK, `{"users":[{"localId":"x"}]}`)
	v := NewFirebaseVerifier(srv.URL+"/v1", "web-key", zap.NewNop())

	for _, header := range []string{"", "Bearer ", "Bearer    ", "Basic abc", "bearer abc"} {
		_, err := v.Verify(context.Background(), header)
		require.ErrorIs(t, err, entity.ErrMissingToken, "header %q", header)
	}
	assert.Equal(t, 0, *calls)
}

func TestFirebaseVerifier_UnreachableLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	v := NewFirebaseVerifier(url, "web-key", zap.NewNop())
	_, err := v.Verify(context.Background(), "Bearer tok")
	require.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestFirebaseVerifier_HungLookupTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	v := NewFirebaseVerifier(srv.URL, "web-key", zap.NewNop()).WithTimeout(50 * time.Millisecond)

	start := time.Now()
	_, err := v.Verify(context.Background(), "Bearer tok")
	require.ErrorIs(t, err, entity.ErrInvalidToken)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNoopVerifier(t *testing.T) {
	caller, err := NewNoopVerifier().Verify(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, caller.Anonymous())
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer  abc.def ")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", tok)

	_, ok = BearerToken("Token abc")
	assert.False(t, ok)
}
