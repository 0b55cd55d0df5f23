package metno

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherlog/manager"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestGetFlatBody(t *testing.T) {
	server := newServer(t, http.StatusOK, `{"temperature": 5.0, "humidity": 70}`)

	reading, err := New(Config{URL: server.URL}).Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5.0, reading.Temperature)
	assert.Equal(t, 70, reading.Humidity)
}

func TestGetAcceptsAnySuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusNonAuthoritativeInfo} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			server := newServer(t, status, `{"temperature": 5.0, "humidity": 70}`)

			reading, err := New(Config{URL: server.URL}).Get(context.Background())
			require.NoError(t, err)

			assert.Equal(t, 5.0, reading.Temperature)
			assert.Equal(t, 70, reading.Humidity)
		})
	}
}

func TestGetLocationForecastBody(t *testing.T) {
	body := `{
	  "type": "Feature",
	  "properties": {
	    "meta": {"units": {"air_temperature": "celsius", "relative_humidity": "%"}},
	    "timeseries": [
	      {"time": "2024-03-09T12:00:00Z", "data": {"instant": {"details": {"air_temperature": -2.4, "relative_humidity": 86.9}}}},
	      {"time": "2024-03-09T13:00:00Z", "data": {"instant": {"details": {"air_temperature": -1.0, "relative_humidity": 80.0}}}}
	    ]
	  }
	}`
	server := newServer(t, http.StatusOK, body)

	reading, err := New(Config{URL: server.URL}).Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, -2.4, reading.Temperature)
	assert.Equal(t, 86, reading.Humidity)
}

func TestGetSendsUserAgent(t *testing.T) {
	var agent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"temperature": 1, "humidity": 2}`))
	}))
	defer server.Close()

	_, err := New(Config{URL: server.URL, UserAgent: "weatherlog-test/1.0"}).Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "weatherlog-test/1.0", agent)
}

func TestGetMalformedBody(t *testing.T) {
	cases := map[string]string{
		"not json":         `<html>oops</html>`,
		"missing humidity": `{"temperature": 5.0}`,
		"string value":     `{"temperature": "warm", "humidity": 70}`,
		"empty timeseries": `{"properties": {"timeseries": []}}`,
		"empty object":     `{}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			server := newServer(t, http.StatusOK, body)

			_, err := New(Config{URL: server.URL}).Get(context.Background())
			assert.ErrorIs(t, err, manager.ErrMalformedResponse)
		})
	}
}

func TestGetNonSuccessStatus(t *testing.T) {
	server := newServer(t, http.StatusForbidden, `{"error":"missing user agent"}`)

	_, err := New(Config{URL: server.URL}).Get(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.Code)
	assert.Contains(t, statusErr.Body, `"error": "missing user agent"`)
	assert.NotErrorIs(t, err, manager.ErrMalformedResponse)
}

func TestGetTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(Config{URL: url}).Get(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
	assert.NotErrorIs(t, err, manager.ErrMalformedResponse)
}
