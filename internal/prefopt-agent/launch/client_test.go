package launch_agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefopt-project/prefopt/pkg/recipe"
)

func testPayload() LaunchPayload {
	r := recipe.Default()
	r.ModelNameOrPath = "org/model"
	r.OutputDir = "out"
	return LaunchPayload{Recipe: r}
}

func TestPostTrainAccepted(t *testing.T) {
	var got LaunchPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, http.MethodPost, req.Method)
		require.Equal(t, "/train", req.URL.Path)
		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewTrainerClient(srv.URL)
	require.NoError(t, client.PostTrain(context.Background(), testPayload()))
	assert.Equal(t, "org/model", got.Recipe.ModelNameOrPath)
}

func TestPostTrainDataError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(StatusResponse{
			Status:  StatusFailed,
			Message: "chosen transcript is empty on line 7",
		})
	}))
	defer srv.Close()

	client := NewTrainerClient(srv.URL)
	err := client.PostTrain(context.Background(), testPayload())
	require.Error(t, err)

	var dataErr *DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Contains(t, dataErr.Message, "line 7")
}

func TestPostTrainServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewTrainerClient(srv.URL)
	err := client.PostTrain(context.Background(), testPayload())
	require.Error(t, err)

	var dataErr *DataError
	assert.False(t, errors.As(err, &dataErr))
}

func TestGetStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/status", req.URL.Path)
		_ = json.NewEncoder(w).Encode(StatusResponse{Status: StatusRunning, Message: "step 120"})
	}))
	defer srv.Close()

	client := NewTrainerClient(srv.URL)
	status, err := client.GetStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, status.Status)
	assert.Equal(t, "step 120", status.Message)
}

func TestGetMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/metrics", req.URL.Path)
		_, _ = w.Write([]byte(`{"train_loss": 0.42}`))
	}))
	defer srv.Close()

	client := NewTrainerClient(srv.URL)
	metrics, err := client.GetMetrics(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"train_loss": 0.42}`, string(metrics))
}
