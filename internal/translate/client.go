// Package translate appends machine translations to dictionary glosses.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

//go:generate mockgen -source=client.go -destination=../mocks/translate/mock_translator.go -package=mock_translate

// Translator translates a phrase.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// GoogleClient calls the public Google Translate endpoint used by browser
// extensions. It needs no API key.
type GoogleClient struct {
	httpClient       *resty.Client
	sourceLanguage   string
	targetLanguage   string
	maxRetryAttempts uint
}

func NewGoogleClient(endpoint, sourceLanguage, targetLanguage string, retryAttempts uint) *GoogleClient {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(endpoint, "/"))
	client.SetHeader("User-Agent", "Mozilla/5.0")
	client.SetTimeout(10 * time.Second)

	return &GoogleClient{
		httpClient:       client,
		sourceLanguage:   sourceLanguage,
		targetLanguage:   targetLanguage,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *GoogleClient) Close() error {
	return client.httpClient.Close()
}

type responseError struct {
	statusCode int
	body       string
}

func (e *responseError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.statusCode, e.body)
}

type decodeError struct {
	err error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("decode translation: %v", e.err)
}

func (e *decodeError) Unwrap() error {
	return e.err
}

// isRetryableError reports whether a failed call may succeed when repeated
func isRetryableError(err error) bool {
	var respErr *responseError
	if errors.As(err, &respErr) {
		return respErr.statusCode == http.StatusTooManyRequests || respErr.statusCode >= http.StatusInternalServerError
	}
	// truncated bodies
	var decErr *decodeError
	if errors.As(err, &decErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func (client *GoogleClient) Translate(ctx context.Context, text string) (string, error) {
	var result string
	if err := retry.Do(
		func() error {
			translated, err := client.translate(ctx, text)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = translated
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return "", fmt.Errorf("translate %q: %w", text, err)
	}
	return result, nil
}

func (client *GoogleClient) translate(ctx context.Context, text string) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     client.sourceLanguage,
			"tl":     client.targetLanguage,
			"dt":     "t",
			"q":      text,
		}).
		Get("/translate_a/single")
	if err != nil {
		return "", fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return "", &responseError{statusCode: response.StatusCode(), body: response.String()}
	}
	translated, err := parseResponse([]byte(response.String()))
	if err != nil {
		return "", &decodeError{err: err}
	}
	return translated, nil
}

// parseResponse joins the translated sentences of a response shaped like
// [[["猫","cat",null,null,10], ...], null, "en", ...].
func parseResponse(body []byte) (string, error) {
	var data []json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("json.Unmarshal > %w", err)
	}
	if len(data) == 0 {
		return "", errors.New("empty response")
	}

	var sentences [][]any
	if err := json.Unmarshal(data[0], &sentences); err != nil {
		return "", fmt.Errorf("json.Unmarshal(sentences) > %w", err)
	}
	var b strings.Builder
	for _, sentence := range sentences {
		if len(sentence) == 0 {
			continue
		}
		if part, ok := sentence[0].(string); ok {
			b.WriteString(part)
		}
	}
	return strings.TrimSpace(b.String()), nil
}
