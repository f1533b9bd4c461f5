//go:build e2e && unix

package e2e

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// upstream serves a small taxonomy in the shape of the real API
var upstream = map[string]string{
	"/":                 `{"types":["artifacts","characters","weapons"]}`,
	"/artifacts":        `[]`,
	"/characters":       `["diluc","klee","venti"]`,
	"/characters/klee":  `{"name":"Klee","vision":"Pyro","rarity":5}`,
	"/characters/venti": `{"name":"Venti","vision":"Anemo","rarity":5}`,
	"/characters/diluc": `{"name":"Diluc","vision":"Pyro","rarity":5}`,
}

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := upstream[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}
