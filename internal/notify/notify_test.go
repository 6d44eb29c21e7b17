package notify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashkalikava/net-parser/internal/ctxlog"
	"github.com/ashkalikava/net-parser/internal/executor"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func TestPublishPostsJobResultAsJSON(t *testing.T) {
	var received executor.JobResult
	var contentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := New(server.URL)
	defer n.Close()

	result := &executor.JobResult{
		ID:       "job-1",
		Pipeline: "ci",
		Event:    "push:main",
		Status:   executor.StatusSuccess,
		Steps: []executor.StepResult{
			{ID: "run.lint", Status: executor.StatusSuccess},
		},
	}
	require.NoError(t, n.Publish(testContext(), result))

	require.Equal(t, "application/json", contentType)
	require.Equal(t, "job-1", received.ID)
	require.Equal(t, "ci", received.Pipeline)
	require.Equal(t, executor.StatusSuccess, received.Status)
	require.Len(t, received.Steps, 1)
}

func TestPublishRejectsNon2xxResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	n := New(server.URL)
	defer n.Close()

	err := n.Publish(testContext(), &executor.JobResult{ID: "job-1", Status: executor.StatusFailure})
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestPublishUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	n := New(server.URL)
	defer n.Close()

	err := n.Publish(testContext(), &executor.JobResult{ID: "job-1"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to publish job status")
}
