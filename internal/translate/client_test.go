package translate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuikit/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(model.TranslatorConfig{
		Endpoint: srv.URL + "/translate",
		Host:     "example.test",
		APIKey:   "secret",
		Timeout:  5 * time.Second,
	}, WithHTTPClient(srv.Client()))
}

func TestTranslateSendsQueryAndHeaders(t *testing.T) {
	var got *http.Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_, _ = w.Write([]byte(`{"translation":"bonjour le monde"}`))
	})

	res, err := client.Translate(context.Background(), "hello world & more", "fr")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, http.MethodGet, got.Method)
	require.Equal(t, "/translate", got.URL.Path)
	require.Equal(t, "hello world & more", got.URL.Query().Get("text"))
	require.Equal(t, "fr", got.URL.Query().Get("target_lang"))
	require.Equal(t, "example.test", got.Header.Get("x-rapidapi-host"))
	require.Equal(t, "secret", got.Header.Get("x-rapidapi-key"))
	require.Equal(t, "bonjour le monde", res.Translated)
	require.Equal(t, "fr", res.Lang)
	require.NotEmpty(t, res.RequestID)
}

func TestTranslateResponseShapes(t *testing.T) {
	cases := map[string]string{
		`{"translation":"a"}`:                              "a",
		`{"translatedText":"b"}`:                           "b",
		`{"data":{"translatedText":"c"}}`:                  "c",
		`"d"`:                                              "d",
		`{"translation":"","translatedText":"e"}`:          "e",
		`{"translation":"f","data":{"translatedText":"g"}}`: "f",
	}
	for body, want := range cases {
		body, want := body, want
		t.Run(body, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			res, err := client.Translate(context.Background(), "hi", "es")
			require.NoError(t, err)
			require.Equal(t, want, res.Translated)
		})
	}
}

func TestTranslateUnrecognizedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	_, err := client.Translate(context.Background(), "hi", "es")
	require.ErrorIs(t, err, ErrUnrecognizedResponse)
	require.ErrorIs(t, err, ErrTranslationFailed)
}

func TestTranslateNonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	_, err := client.Translate(context.Background(), "hi", "de")
	require.ErrorIs(t, err, ErrTranslationFailed)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusTooManyRequests, statusErr.Code)
	require.Equal(t, "HTTP error! status: 429", err.Error())
}

func TestTranslateTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	client := New(model.TranslatorConfig{Endpoint: endpoint, APIKey: "k"})
	_, err := client.Translate(context.Background(), "hi", "de")
	require.ErrorIs(t, err, ErrTranslationFailed)
}

func TestTranslateEmptyTextSkipsRequest(t *testing.T) {
	called := false
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		called = true
	})
	_, err := client.Translate(context.Background(), "   \n", "hi")
	require.ErrorIs(t, err, ErrEmptyText)
	require.False(t, called)
}

func TestTranslateUnsupportedLanguage(t *testing.T) {
	called := false
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		called = true
	})
	_, err := client.Translate(context.Background(), "hi", "xx")
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
	require.False(t, called)
}

func TestTranslateNormalizesLanguageCode(t *testing.T) {
	var target string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		target = r.URL.Query().Get("target_lang")
		_, _ = w.Write([]byte(`"olá"`))
	})
	res, err := client.Translate(context.Background(), "hello", "PT-br")
	require.NoError(t, err)
	require.Equal(t, "pt", target)
	require.Equal(t, "olá", res.Translated)
}
