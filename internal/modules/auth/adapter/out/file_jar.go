package out

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileJar is an http.CookieJar persisted to a JSON file so separate CLI
// invocations share one backend session, the way a browser keeps the session
// cookie across page loads. Scope handling is deliberately minimal: cookies
// are keyed by host only, which is enough for a single-origin API.
type FileJar struct {
	path string

	mu      sync.Mutex
	entries map[string][]storedCookie
}

type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

func NewFileJar(path string) (*FileJar, error) {
	jar := &FileJar{path: path, entries: map[string][]storedCookie{}}
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return jar, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(payload, &jar.entries); err != nil {
		// A corrupt session file means a fresh session, not a fatal error.
		jar.entries = map[string][]storedCookie{}
	}
	return jar, nil
}

func (j *FileJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	host := u.Hostname()
	existing := j.entries[host]
	for _, c := range cookies {
		existing = removeByName(existing, c.Name)
		if c.MaxAge < 0 {
			continue
		}
		stored := storedCookie{Name: c.Name, Value: c.Value, Path: c.Path, Expires: c.Expires}
		if c.MaxAge > 0 {
			stored.Expires = time.Now().Add(time.Duration(c.MaxAge) * time.Second)
		}
		existing = append(existing, stored)
	}
	j.entries[host] = existing
	j.persist()
}

func (j *FileJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now()
	var out []*http.Cookie
	for _, c := range j.entries[u.Hostname()] {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value, Path: c.Path})
	}
	return out
}

// Clear drops every stored cookie. Used after logout so a stale credential
// never outlives the local session reset.
func (j *FileJar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = map[string][]storedCookie{}
	j.persist()
}

func (j *FileJar) persist() {
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return
	}
	payload, err := json.MarshalIndent(j.entries, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(j.path, payload, 0o600)
}

func removeByName(cookies []storedCookie, name string) []storedCookie {
	out := cookies[:0]
	for _, c := range cookies {
		if c.Name != name {
			out = append(out, c)
		}
	}
	return out
}
