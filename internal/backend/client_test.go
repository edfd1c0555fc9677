package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hvmanh/ttms-web/internal/backend"
)

func newClient(t *testing.T, handler http.Handler) (*backend.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := backend.New(backend.Config{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	}, zerolog.Nop())
	return client, server
}

func TestClientAttachesBearerToken(t *testing.T) {
	var seen string
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))

	ctx := backend.WithToken(context.Background(), "token-123")
	_, err := client.ListStudents(ctx)
	require.NoError(t, err)
	require.Equal(t, "Bearer token-123", seen)
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	var seen string
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.ListStudents(context.Background())
	require.NoError(t, err)
	require.Empty(t, seen)
}

func TestLoginUnauthorizedIsACredentialError(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))

	_, err := client.Login(context.Background(), "user", "wrong")
	require.Error(t, err)
	require.False(t, backend.IsSessionExpired(err))
	require.Equal(t, "Invalid credentials", err.Error())
}

func TestUnauthorizedOutsideLoginExpiresSession(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.ListStudents(context.Background())
	require.Error(t, err)
	require.True(t, backend.IsSessionExpired(err))
}

func TestBodyErrorMessageIsShownVerbatim(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Học viên đã đăng ký khóa học này"}`))
	}))

	err := client.Enroll(context.Background(), "S1", "K1")
	require.Error(t, err)
	require.Equal(t, "Học viên đã đăng ký khóa học này", err.Error())
}

func TestFallbackMessageWhenBodyIsUnusable(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>boom</html>`))
	}))

	_, err := client.ListStudents(context.Background())
	require.Error(t, err)
	require.Equal(t, "Lỗi khi tải danh sách học viên", err.Error())
}

func TestConnectivityFailureUsesFixedMessage(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := backend.New(backend.Config{
		BaseURL: server.URL,
		Timeout: time.Second,
	}, zerolog.Nop())

	_, err := client.ListStudents(context.Background())
	require.Error(t, err)
	require.Equal(t, backend.MsgCannotReachServer, err.Error())
}

func TestUpdateManyProgressIssuesOneCallPerUpdate(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []backend.ProgressUpdate
	)
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var update backend.ProgressUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		mu.Lock()
		bodies = append(bodies, update)
		mu.Unlock()
		_, _ = w.Write([]byte(`{}`))
	}))

	updates := []backend.ProgressUpdate{
		{StudentID: "S1", ModuleID: 1, Status: backend.ProgressDone},
		{StudentID: "S1", ModuleID: 2, Status: backend.ProgressNotDone},
		{StudentID: "S1", ModuleID: 3, Status: backend.ProgressDone},
	}
	require.NoError(t, client.UpdateManyProgress(context.Background(), updates))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 3)
	for _, body := range bodies {
		require.Equal(t, "S1", body.StudentID)
	}
}

func TestUpdateManyProgressPropagatesPartialFailure(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var update backend.ProgressUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		if update.ModuleID == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))

	err := client.UpdateManyProgress(context.Background(), []backend.ProgressUpdate{
		{StudentID: "S1", ModuleID: 1, Status: backend.ProgressDone},
		{StudentID: "S1", ModuleID: 2, Status: backend.ProgressDone},
	})
	require.Error(t, err)
	require.Equal(t, "Lỗi khi cập nhật tiến độ", err.Error())
}
