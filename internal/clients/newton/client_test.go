package newton

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimize(t *testing.T) {
	var gotPath, gotQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [[0.08, 0.5, 0.3, 0.2, 0.12], [0.05, 0.4, 0.4, 0.2, 0.09]]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, zerolog.Nop())

	data, err := client.Optimize(context.Background(), []string{"AAA", "BBB", "CCC"})
	require.NoError(t, err)

	assert.Equal(t, "/modern-portfolio/", gotPath)
	assert.Contains(t, gotQuery, "tickers=AAA%2CBBB%2CCCC")
	assert.Contains(t, gotQuery, "interval=1mo")
	assert.Contains(t, gotQuery, "observations=12")

	require.Len(t, data, 2)
	assert.Equal(t, []float64{0.08, 0.5, 0.3, 0.2, 0.12}, data[0])
}

func TestOptimizeEmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, zerolog.Nop())

	data, err := client.Optimize(context.Background(), []string{"AAA"})
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestOptimizeNoTickers(t *testing.T) {
	client := NewClient("http://unused", 5*time.Second, zerolog.Nop())

	_, err := client.Optimize(context.Background(), nil)
	assert.Error(t, err)
}

func TestOptimizeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, zerolog.Nop())

	_, err := client.Optimize(context.Background(), []string{"AAA"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestOptimizeMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, zerolog.Nop())

	_, err := client.Optimize(context.Background(), []string{"AAA"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}
