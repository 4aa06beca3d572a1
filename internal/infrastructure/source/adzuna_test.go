package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"jobmatch/internal/domain/job"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func adzunaResults(from, n int) []map[string]any {
	out := make([]map[string]any, 0, n)
	for i := from; i < from+n; i++ {
		out = append(out, map[string]any{
			"id":           fmt.Sprint(i),
			"title":        fmt.Sprintf("<strong>Développeur</strong> %d", i),
			"description":  "React &amp; Node.js",
			"created":      "2026-10-11T10:00:00Z",
			"redirect_url": fmt.Sprintf("https://adzuna.example/%d", i),
			"company":      map[string]any{"display_name": "ACME"},
			"location":     map[string]any{"display_name": "Paris, Île-de-France"},
			"salary_min":   45000.0,
			"salary_max":   55400.0,
		})
	}
	return out
}

type adzunaStub struct {
	mu    sync.Mutex
	paths []string
	query []map[string]string
}

func newAdzunaServer(t *testing.T, stub *adzunaStub, handle func(page string, w http.ResponseWriter)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		stub.mu.Lock()
		stub.paths = append(stub.paths, r.URL.Path)
		stub.query = append(stub.query, map[string]string{
			"app_id":           q.Get("app_id"),
			"what":             q.Get("what"),
			"where":            q.Get("where"),
			"results_per_page": q.Get("results_per_page"),
			"max_days_old":     q.Get("max_days_old"),
			"what_or":          q.Get("what_or"),
		})
		stub.mu.Unlock()

		page := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		handle(page, w)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeAdzuna(w http.ResponseWriter, results []map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"results": results, "count": 1234})
}

func newTestAdzuna(url string) *Adzuna {
	return NewAdzuna(AdzunaOptions{
		AppID:     "app",
		AppKey:    "key",
		BaseURL:   url,
		PageDelay: time.Millisecond,
	}, zap.NewNop())
}

func TestAdzuna_FetchesTwoPagesSequentially(t *testing.T) {
	stub := &adzunaStub{}
	srv := newAdzunaServer(t, stub, func(page string, w http.ResponseWriter) {
		switch page {
		case "1":
			writeAdzuna(w, adzunaResults(0, adzunaPageSize))
		case "2":
			writeAdzuna(w, adzunaResults(adzunaPageSize, 3))
		default:
			t.Errorf("unexpected page %s", page)
		}
	})

	got, err := newTestAdzuna(srv.URL).Search(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, got, adzunaPageSize+3)

	assert.Equal(t, []string{"/fr/search/1", "/fr/search/2"}, stub.paths)
	first := stub.query[0]
	assert.Equal(t, "app", first["app_id"])
	assert.Equal(t, "developer", first["what"])
	assert.Equal(t, "Île-de-France", first["where"])
	assert.Equal(t, "50", first["results_per_page"])
	assert.Equal(t, "14", first["max_days_old"])
	assert.Equal(t, adzunaWhatOr, first["what_or"])

	assert.Equal(t, job.Posting{
		ID:          "adzuna-0",
		Title:       "Développeur 0",
		Company:     "ACME",
		Location:    "Paris, Île-de-France",
		Description: "React & Node.js",
		URL:         "https://adzuna.example/0",
		DatePosted:  "2026-10-11T10:00:00Z",
		Salary:      "45K€ - 55K€",
		Source:      job.SourceAdzuna,
	}, got[0])
}

func TestAdzuna_ShortFirstPageStops(t *testing.T) {
	stub := &adzunaStub{}
	srv := newAdzunaServer(t, stub, func(_ string, w http.ResponseWriter) {
		writeAdzuna(w, adzunaResults(0, 2))
	})

	got, err := newTestAdzuna(srv.URL).Search(context.Background(), Query{Keywords: "react"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Len(t, stub.paths, 1)
	assert.Equal(t, "react", stub.query[0]["what"])
}

func TestAdzuna_NonOKIsEmpty(t *testing.T) {
	srv := newAdzunaServer(t, &adzunaStub{}, func(_ string, w http.ResponseWriter) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	})

	got, err := newTestAdzuna(srv.URL).Search(context.Background(), Query{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAdzuna_SecondPageFailureKeepsFirst(t *testing.T) {
	srv := newAdzunaServer(t, &adzunaStub{}, func(page string, w http.ResponseWriter) {
		if page == "1" {
			writeAdzuna(w, adzunaResults(0, adzunaPageSize))
			return
		}
		_, _ = w.Write([]byte("{not json"))
	})

	got, err := newTestAdzuna(srv.URL).Search(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, got, adzunaPageSize)
}

func TestAdzuna_TransportErrorOnFirstPage(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestAdzuna(url).Search(context.Background(), Query{})
	assert.Error(t, err)
}

func TestAdzuna_DisabledWithoutCredentials(t *testing.T) {
	src := NewAdzuna(AdzunaOptions{AppID: "only-id"}, nil)
	assert.False(t, src.Enabled())

	got, err := src.Search(context.Background(), Query{})
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestFormatSalary(t *testing.T) {
	assert.Equal(t, "45K€ - 55K€", formatSalary(45000, 55000))
	assert.Equal(t, "46K€ - 56K€", formatSalary(45500, 55500))
	assert.Equal(t, "40K€+", formatSalary(40000, 0))
	assert.Equal(t, "", formatSalary(0, 60000))
	assert.Equal(t, "", formatSalary(0, 0))
}
