package launch_agent

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefopt-project/prefopt/pkg/afero"
	"github.com/prefopt-project/prefopt/pkg/logging"
)

const testRecipe = `model_name_or_path: org/model
output_dir: out
`

// fakeTrainerClient scripts the trainer side of a run.
type fakeTrainerClient struct {
	launchFailures int
	launchErr      error
	statuses       []StatusResponse
	metrics        []byte

	payload     *LaunchPayload
	trainCalls  int
	statusCalls int
	terminated  bool
}

func (f *fakeTrainerClient) PostTrain(_ context.Context, payload LaunchPayload) error {
	f.trainCalls++
	if f.launchErr != nil {
		return f.launchErr
	}
	if f.trainCalls <= f.launchFailures {
		return fmt.Errorf("connection refused")
	}
	f.payload = &payload
	return nil
}

func (f *fakeTrainerClient) GetStatus(context.Context) (StatusResponse, error) {
	if f.statusCalls >= len(f.statuses) {
		return StatusResponse{}, fmt.Errorf("no more scripted statuses")
	}
	status := f.statuses[f.statusCalls]
	f.statusCalls++
	return status, nil
}

func (f *fakeTrainerClient) GetMetrics(context.Context) ([]byte, error) {
	if f.metrics == nil {
		return nil, fmt.Errorf("no metrics")
	}
	return f.metrics, nil
}

func (f *fakeTrainerClient) PostTerminate(context.Context) error {
	f.terminated = true
	return nil
}

func newTestAgent(t *testing.T, fs afero.Fs, client TrainerClient) *LaunchAgent {
	t.Helper()

	agent, err := NewLaunchAgent(&Config{
		AnotherLogger:   logging.Discard(),
		Fs:              fs,
		RecipePath:      "recipes/dpo.yaml",
		TrainerEndpoint: "http://trainer.local:8080",
		DataPath:        "data/reflections.jsonl",
		TestFraction:    0.25,
		MetricsPath:     "out/metrics.json",
		PollInterval:    time.Millisecond,
		StartupTimeout:  50 * time.Millisecond,
	})
	require.NoError(t, err)
	agent.Client = client
	return agent
}

func testFs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "recipes/dpo.yaml", []byte(testRecipe), 0o644))

	var lines string
	for i := 0; i < 8; i++ {
		row, err := json.Marshal(map[string]string{
			"question":              fmt.Sprintf("q%d", i),
			"first_trial_reasoning": "r",
			"reflection_chosen":     "c",
			"reflection_rejected":   "j",
		})
		require.NoError(t, err)
		lines += string(row) + "\n"
	}
	require.NoError(t, afero.WriteFile(fs, "data/reflections.jsonl", []byte(lines), 0o644))

	return fs
}

func TestStartHappyPath(t *testing.T) {
	fs := testFs(t)
	client := &fakeTrainerClient{
		statuses: []StatusResponse{
			{Status: StatusPending},
			{Status: StatusRunning, Message: "step 10"},
			{Status: StatusFinished},
		},
		metrics: []byte(`{"train_loss": 0.42}`),
	}

	agent := newTestAgent(t, fs, client)
	require.NoError(t, agent.Start())

	require.NotNil(t, client.payload)
	assert.Equal(t, "org/model", client.payload.Recipe.ModelNameOrPath)
	assert.Len(t, client.payload.Train, 6)
	assert.Len(t, client.payload.Test, 2)
	assert.Nil(t, client.payload.Recipe.ResumeFromCheckpoint)
	assert.True(t, client.terminated)

	metrics, err := afero.ReadFile(fs, "out/metrics.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"train_loss": 0.42}`, string(metrics))
}

func TestStartResumesFromLatestCheckpoint(t *testing.T) {
	fs := testFs(t)
	require.NoError(t, fs.MkdirAll("out/checkpoint-200", 0o755))
	require.NoError(t, fs.MkdirAll("out/checkpoint-1100", 0o755))

	client := &fakeTrainerClient{
		statuses: []StatusResponse{{Status: StatusFinished}},
		metrics:  []byte(`{}`),
	}

	agent := newTestAgent(t, fs, client)
	require.NoError(t, agent.Start())

	require.NotNil(t, client.payload.Recipe.ResumeFromCheckpoint)
	assert.Contains(t, *client.payload.Recipe.ResumeFromCheckpoint, "checkpoint-1100")
}

func TestStartRetriesWhileTrainerStarts(t *testing.T) {
	fs := testFs(t)
	client := &fakeTrainerClient{
		launchFailures: 2,
		statuses:       []StatusResponse{{Status: StatusFinished}},
		metrics:        []byte(`{}`),
	}

	agent := newTestAgent(t, fs, client)
	require.NoError(t, agent.Start())
	assert.Equal(t, 3, client.trainCalls)
}

func TestStartDataErrorDoesNotRetry(t *testing.T) {
	fs := testFs(t)
	client := &fakeTrainerClient{
		launchErr: &DataError{Message: "bad dataset"},
	}

	agent := newTestAgent(t, fs, client)
	err := agent.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad dataset")
	assert.Equal(t, 1, client.trainCalls)
	assert.True(t, client.terminated)
}

func TestStartTrainingFailure(t *testing.T) {
	fs := testFs(t)
	client := &fakeTrainerClient{
		statuses: []StatusResponse{
			{Status: StatusRunning},
			{Status: StatusFailed, Message: "loss diverged"},
		},
	}

	agent := newTestAgent(t, fs, client)
	err := agent.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loss diverged")
	assert.True(t, client.terminated)
}

func TestStartInvalidRecipe(t *testing.T) {
	fs := testFs(t)
	require.NoError(t, afero.WriteFile(fs, "recipes/dpo.yaml",
		[]byte("model_name_or_path: org/model\noutput_dir: out\nlearning_rate: -1\n"), 0o644))

	client := &fakeTrainerClient{}
	agent := newTestAgent(t, fs, client)

	err := agent.Start()
	require.Error(t, err)
	assert.Zero(t, client.trainCalls)
}

func TestNewLaunchAgentRejectsInvalidConfig(t *testing.T) {
	_, err := NewLaunchAgent(&Config{
		AnotherLogger: logging.Discard(),
	})
	require.Error(t, err)
}
