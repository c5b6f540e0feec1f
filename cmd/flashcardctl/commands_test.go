package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/scry-cards/internal/api"
	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJobID = "7f0c2a8e-6a51-4b5e-9a0d-2f4c5d6e7f80"

func newFakeServer(t *testing.T, jobStatus string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/generate-flashcards", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"job_id":"` + testJobID + `","status":"pending","message":"Flashcard generation job created"}`))
	})
	mux.HandleFunc("/job-status/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/job-status/"+testJobID {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Job not found"}`))
			return
		}
		msg := "null"
		if jobStatus == "error" {
			msg = `"ollama backend returned status 500"`
		}
		_, _ = w.Write([]byte(`{"job_id":"` + testJobID + `","status":"` + jobStatus + `","progress":"","result":null,"error_message":` + msg + `}`))
	})
	mux.HandleFunc("/generate-flashcards-sync", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"flashcards":{"final_raw_output":"[]","parsed_cards":[{"question":"What is a graph?","answer":"Nodes and edges."}],` +
			`"topics_analyzed":"graphs","review_status":"completed","iterations_completed":1,"method":"direct-backend","json_parse_mode":"strict"},` +
			`"processing_time":0.4,"success":true}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSubmitCommand(t *testing.T) {
	server := newFakeServer(t, "pending")

	out, err := execute(t, "submit", "--server", server.URL, "explain", "recursion")
	require.NoError(t, err)

	var created api.JobCreatedResponse
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, testJobID, created.JobID)
	assert.Equal(t, domain.JobStatusPending, created.Status)
}

func TestStatusCommand(t *testing.T) {
	server := newFakeServer(t, "processing")

	out, err := execute(t, "status", "--server", server.URL, testJobID)
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "processing"`)

	_, err = execute(t, "status", "--server", server.URL, "unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Job not found")
}

func TestGenerateCommand(t *testing.T) {
	server := newFakeServer(t, "pending")

	out, err := execute(t, "generate", "--server", server.URL, "--cards", "graphs")
	require.NoError(t, err)
	assert.Equal(t, "1. Q: What is a graph?\n   A: Nodes and edges.\n", out)
}

func TestWaitCommand(t *testing.T) {
	t.Run("completed", func(t *testing.T) {
		server := newFakeServer(t, "completed")
		out, err := execute(t, "wait", "--server", server.URL, "--interval", "10ms", testJobID)
		require.NoError(t, err)
		assert.Contains(t, out, `"status": "completed"`)
	})

	t.Run("failed job exits with error", func(t *testing.T) {
		server := newFakeServer(t, "error")
		out, err := execute(t, "wait", "--server", server.URL, "--interval", "10ms", testJobID)
		require.Error(t, err)
		assert.Contains(t, out, "ollama backend returned status 500")
	})

	t.Run("timeout", func(t *testing.T) {
		server := newFakeServer(t, "processing")
		_, err := execute(t, "wait", "--server", server.URL, "--interval", "10ms", "--timeout", "50ms", testJobID)
		require.Error(t, err)
	})
}

func TestInvalidServerURL(t *testing.T) {
	_, err := execute(t, "status", "--server", "not a url", testJobID)
	require.Error(t, err)
}

func TestArgsValidation(t *testing.T) {
	_, err := execute(t, "status")
	require.Error(t, err)
}
