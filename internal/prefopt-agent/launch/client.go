package launch_agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/prefopt-project/prefopt/pkg/preference"
	"github.com/prefopt-project/prefopt/pkg/recipe"
)

// Trainer statuses the launch agent understands.
const (
	StatusPending  = "pending"
	StatusRunning  = "running"
	StatusFinished = "finished"
	StatusFailed   = "failed"
)

// LaunchPayload is the JSON document shipped to the trainer: the recipe plus
// the already-split preference data.
type LaunchPayload struct {
	Recipe *recipe.Recipe          `json:"recipe"`
	Train  []preference.Comparison `json:"train"`
	Test   []preference.Comparison `json:"test"`
}

// StatusResponse is the trainer's answer to a status poll.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// DataError marks a rejection the trainer attributed to the dataset rather
// than to itself, so callers can surface it to the data owner instead of
// retrying.
type DataError struct {
	Message string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("trainer rejected the dataset: %s", e.Message)
}

// TrainerClient drives the external training runtime over HTTP.
type TrainerClient interface {
	PostTrain(ctx context.Context, payload LaunchPayload) error
	GetStatus(ctx context.Context) (StatusResponse, error)
	GetMetrics(ctx context.Context) ([]byte, error)
	PostTerminate(ctx context.Context) error
}

type httpTrainerClient struct {
	baseURL string
	client  *http.Client
}

// NewTrainerClient returns the default HTTP TrainerClient for the given base URL.
func NewTrainerClient(baseURL string) TrainerClient {
	return &httpTrainerClient{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (c *httpTrainerClient) PostTrain(ctx context.Context, payload LaunchPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshalling launch payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/train", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "building /train request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "calling /train")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading /train response")
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	case http.StatusUnprocessableEntity:
		// data validation happens synchronously in /train
		var status StatusResponse
		if err := json.Unmarshal(respBody, &status); err == nil && status.Message != "" {
			return &DataError{Message: status.Message}
		}
		return &DataError{Message: string(respBody)}
	default:
		return errors.Errorf("/train - StatusCode: %d, Response: %s", resp.StatusCode, string(respBody))
	}
}

func (c *httpTrainerClient) GetStatus(ctx context.Context) (StatusResponse, error) {
	var status StatusResponse

	respBody, err := c.get(ctx, "/status")
	if err != nil {
		return status, err
	}

	if err := json.Unmarshal(respBody, &status); err != nil {
		return status, errors.Wrapf(err, "unmarshalling /status response %s", string(respBody))
	}

	return status, nil
}

func (c *httpTrainerClient) GetMetrics(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "/metrics")
}

func (c *httpTrainerClient) PostTerminate(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/terminate", nil)
	if err != nil {
		return errors.Wrap(err, "building /terminate request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "calling /terminate")
	}
	_ = resp.Body.Close()

	return nil
}

func (c *httpTrainerClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s request", path)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "calling %s", path)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s response", path)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("%s - StatusCode: %d, Response: %s", path, resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
