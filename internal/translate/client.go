// Package translate calls the remote text translation API.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuikit/internal/model"
)

// Defaults for the RapidAPI text translator.
const (
	DefaultEndpoint = "https://text-translator5.p.rapidapi.com/translate"
	DefaultHost     = "text-translator5.p.rapidapi.com"
	DefaultTimeout  = 30 * time.Second
)

const maxBodyBytes = 1 << 20

var (
	// ErrEmptyText is returned when there is nothing to translate.
	ErrEmptyText = errors.New("please enter some text to translate")
	// ErrUnsupportedLanguage is returned for target codes outside Languages().
	ErrUnsupportedLanguage = errors.New("unsupported target language")
	// ErrTranslationFailed marks every failure of the remote call.
	ErrTranslationFailed = errors.New("translation failed")
	// ErrUnrecognizedResponse is returned when no known field carries the result.
	ErrUnrecognizedResponse = fmt.Errorf("%w: unrecognized response", ErrTranslationFailed)
)

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// Unwrap lets errors.Is match ErrTranslationFailed.
func (e *StatusError) Unwrap() error {
	return ErrTranslationFailed
}

// Result is a completed translation.
type Result struct {
	RequestID  string
	Text       string
	Lang       string
	Translated string
}

// Client issues translation requests.
type Client struct {
	endpoint string
	host     string
	apiKey   string
	http     *http.Client
	log      zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(cl *Client) {
		cl.log = l
	}
}

// New builds a Client from translator settings.
func New(cfg model.TranslatorConfig, opts ...Option) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		endpoint: endpoint,
		host:     host,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: timeout},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Translate sends text to the API and returns the translated string.
func (c *Client) Translate(ctx context.Context, text, lang string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyText
	}
	target, ok := Lookup(lang)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	reqID := uuid.NewString()
	logger := c.log.With().Str("request_id", reqID).Str("lang", target.Code).Logger()

	reqURL, err := buildURL(c.endpoint, text, target.Code)
	if err != nil {
		return Result{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("x-rapidapi-key", c.apiKey)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("translation request failed")
		return Result{}, fmt.Errorf("%w: %w", ErrTranslationFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	logger.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(started)).Msg("translation response")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{}, fmt.Errorf("%w: failed to read response: %w", ErrTranslationFailed, err)
	}
	translated, err := extractTranslation(body)
	if err != nil {
		logger.Warn().Bytes("body", body).Msg("unrecognized translation response")
		return Result{}, err
	}
	logger.Info().Int("chars", len([]rune(translated))).Msg("translated")
	return Result{
		RequestID:  reqID,
		Text:       text,
		Lang:       target.Code,
		Translated: translated,
	}, nil
}

func buildURL(endpoint, text, lang string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid translator endpoint: %w", err)
	}
	q := u.Query()
	q.Set("text", text)
	q.Set("target_lang", lang)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// extractTranslation reads the first known result shape:
// "translation", "translatedText", "data.translatedText" or a bare JSON string.
func extractTranslation(body []byte) (string, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %w", ErrTranslationFailed, err)
	}
	switch v := payload.(type) {
	case string:
		return v, nil
	case map[string]any:
		if s, ok := stringField(v, "translation"); ok {
			return s, nil
		}
		if s, ok := stringField(v, "translatedText"); ok {
			return s, nil
		}
		if data, ok := v["data"].(map[string]any); ok {
			if s, ok := stringField(data, "translatedText"); ok {
				return s, nil
			}
		}
	}
	return "", ErrUnrecognizedResponse
}

func stringField(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
