package source

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jobmatch/internal/logger"
)

const (
	defaultHTTPTimeout = 15 * time.Second
	userAgent          = "jobmatch/1.0"

	defaultCompany  = "Entreprise confidentielle"
	defaultLocation = "Non spécifié"
)

// Query carries the per-request search input forwarded to every source.
type Query struct {
	Keywords string
}

func (q Query) Normalized() Query {
	return Query{Keywords: strings.Join(strings.Fields(q.Keywords), " ")}
}

func pickNonEmpty(a, fallback string) string {
	a = strings.TrimSpace(a)
	if a != "" {
		return a
	}
	return fallback
}

// statusError reads a short excerpt of an error response body.
func statusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := logger.Truncate(string(b), 200)
	if msg == "" {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
}
