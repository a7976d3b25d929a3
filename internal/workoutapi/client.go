package workoutapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/entrenoapp/datasync/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client talks to the remote workout store with bearer-token auth.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type createWorkoutResponse struct {
	Success bool `json:"success"`
}

// CreateWorkout posts one workout document to the remote store.
func (c *Client) CreateWorkout(ctx context.Context, token string, workout Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutapi.createWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	payload, err := json.Marshal(workout)
	if err != nil {
		return fmt.Errorf("marshal workout: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/workouts", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post workout: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read create workout response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("create workout: unexpected status %d: %s", resp.StatusCode, respBytes)
	}

	var createResp createWorkoutResponse
	if err := json.Unmarshal(respBytes, &createResp); err != nil {
		// tolerated, some deployments answer with a bare 201
		log.Tracef("create workout: non-json response body: %s", respBytes)
	}

	return nil
}

type listWorkoutsResponse struct {
	Workouts []StoredWorkout `json:"workouts"`
}

// ListWorkouts fetches up to limit workout documents from the remote store.
func (c *Client) ListWorkouts(ctx context.Context, token string, limit int) (_ []StoredWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutapi.listWorkouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	url := fmt.Sprintf("%s/api/workouts?limit=%d", c.baseURL, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read list workouts response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("list workouts: unexpected status %d: %s", resp.StatusCode, respBytes)
	}

	var listResp listWorkoutsResponse
	if err := json.Unmarshal(respBytes, &listResp); err != nil {
		return nil, fmt.Errorf("unmarshal list workouts response: %w", err)
	}

	return listResp.Workouts, nil
}

// The backend moved the routines endpoint around between releases,
// so the client probes the known paths until one answers.
var routinesPathCandidates = []string{
	"api/routines/me",
	"api/routines/my",
	"routines/me",
	"routines/my",
	"api/users/me/routines",
	"users/me/routines",
}

// FetchRoutinesRaw returns the user's routines as raw JSON documents.
// The caller deals with the varying routine shapes; this only unwraps the
// response envelope, which can be {"routines": [...]}, {"list": [...]} or
// a bare array.
func (c *Client) FetchRoutinesRaw(ctx context.Context, token string) (_ []json.RawMessage, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutapi.fetchRoutines")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	for _, path := range routinesPathCandidates {
		url := c.baseURL + "/" + path
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if reqErr != nil {
			return nil, reqErr
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, respErr := c.httpClient.Do(req)
		if respErr != nil {
			log.Tracef("fetch routines via %s: %s", path, respErr)
			continue
		}

		respBytes, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			log.Tracef("fetch routines via %s: read body: %s", path, readErr)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			log.Tracef("fetch routines via %s -> %d", path, resp.StatusCode)
			continue
		}

		return unwrapRoutines(respBytes)
	}

	return nil, fmt.Errorf("no routines endpoint answered")
}

func unwrapRoutines(respBytes []byte) ([]json.RawMessage, error) {
	var envelope struct {
		Routines []json.RawMessage `json:"routines"`
		List     []json.RawMessage `json:"list"`
	}
	if err := json.Unmarshal(respBytes, &envelope); err == nil {
		if envelope.Routines != nil {
			return envelope.Routines, nil
		}
		if envelope.List != nil {
			return envelope.List, nil
		}
	}

	var bare []json.RawMessage
	if err := json.Unmarshal(respBytes, &bare); err == nil {
		return bare, nil
	}

	return nil, fmt.Errorf("unrecognized routines response shape")
}
