// Package client calls the trainer REST API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	apiv1 "github.com/at-ishikawa/kotoba/internal/api/v1"
	"github.com/at-ishikawa/kotoba/internal/dictionary"
)

// APIError is a non-2xx response of the server.
type APIError struct {
	StatusCode int
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("status code: %d, %s: %s", e.StatusCode, e.Message, strings.Join(e.Details, ", "))
	}
	return fmt.Sprintf("status code: %d, %s", e.StatusCode, e.Message)
}

// Is reports a 404 as dictionary.ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == dictionary.ErrNotFound && e.StatusCode == http.StatusNotFound
}

type Client struct {
	httpClient *resty.Client
}

func New(baseURL string) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetHeader("Accept", "application/json")
	return &Client{httpClient: client}
}

func (c *Client) Dictionaries(ctx context.Context) (apiv1.ListDictionariesResponse, error) {
	var result apiv1.ListDictionariesResponse
	if err := c.do(c.request(ctx).SetResult(&result), http.MethodGet, "/api/dictionaries"); err != nil {
		return apiv1.ListDictionariesResponse{}, err
	}
	return result, nil
}

func (c *Client) RandomWord(ctx context.Context, req apiv1.GetRandomEntryRequest) (apiv1.GetRandomEntryResponse, error) {
	var result apiv1.GetRandomEntryResponse
	r := c.request(ctx).SetResult(&result)
	if req.Dict != "" {
		r.SetQueryParam("dict", req.Dict)
	}
	if req.Session != "" {
		r.SetQueryParam("session", req.Session)
	}
	if req.ShowKatakanaReading {
		r.SetQueryParam("show_katakana_reading", "1")
	}
	if err := c.do(r, http.MethodGet, "/api/random-word"); err != nil {
		return apiv1.GetRandomEntryResponse{}, err
	}
	return result, nil
}

func (c *Client) Check(ctx context.Context, req apiv1.CheckAnswerRequest) (apiv1.CheckAnswerResponse, error) {
	var result apiv1.CheckAnswerResponse
	if err := c.do(c.request(ctx).SetBody(req).SetResult(&result), http.MethodPost, "/api/check"); err != nil {
		return apiv1.CheckAnswerResponse{}, err
	}
	return result, nil
}

func (c *Client) Heartbeat(ctx context.Context, session string) (apiv1.HeartbeatResponse, error) {
	var result apiv1.HeartbeatResponse
	r := c.request(ctx).SetBody(apiv1.HeartbeatRequest{Session: session}).SetResult(&result)
	if err := c.do(r, http.MethodPost, "/api/heartbeat"); err != nil {
		return apiv1.HeartbeatResponse{}, err
	}
	return result, nil
}

func (c *Client) CreateSession(ctx context.Context) (apiv1.CreateSessionResponse, error) {
	var result apiv1.CreateSessionResponse
	if err := c.do(c.request(ctx).SetResult(&result), http.MethodPost, "/api/sessions"); err != nil {
		return apiv1.CreateSessionResponse{}, err
	}
	return result, nil
}

func (c *Client) Score(ctx context.Context, session string) (apiv1.ScoreResponse, error) {
	var result apiv1.ScoreResponse
	r := c.request(ctx).SetQueryParam("session", session).SetResult(&result)
	if err := c.do(r, http.MethodGet, "/api/scores"); err != nil {
		return apiv1.ScoreResponse{}, err
	}
	return result, nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.httpClient.R().
		SetContext(ctx).
		SetError(&apiv1.ErrorResponse{})
}

func (c *Client) do(r *resty.Request, method, path string) error {
	res, err := r.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s > %w", method, path, err)
	}
	if res.IsError() {
		apiErr := &APIError{StatusCode: res.StatusCode(), Message: string(res.Body())}
		if body, ok := res.Error().(*apiv1.ErrorResponse); ok && body.Error != "" {
			apiErr.Message = body.Error
			apiErr.Details = body.Details
		}
		return apiErr
	}
	return nil
}
