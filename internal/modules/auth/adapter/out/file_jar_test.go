package out_test

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"todohub/internal/modules/auth/adapter/out"
)

func jarURL(t *testing.T) *url.URL {
	t.Helper()
	u, err := url.Parse("http://localhost:4000/api")
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	return u
}

func TestFileJarSurvivesReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	u := jarURL(t)

	jar, err := out.NewFileJar(path)
	if err != nil {
		t.Fatalf("new jar: %v", err)
	}
	jar.SetCookies(u, []*http.Cookie{{Name: "sid", Value: "abc123"}})

	reopened, err := out.NewFileJar(path)
	if err != nil {
		t.Fatalf("reopen jar: %v", err)
	}
	cookies := reopened.Cookies(u)
	if len(cookies) != 1 || cookies[0].Name != "sid" || cookies[0].Value != "abc123" {
		t.Fatalf("unexpected cookies after reopen: %+v", cookies)
	}
}

func TestFileJarReplacesByName(t *testing.T) {
	t.Parallel()
	jar, err := out.NewFileJar(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("new jar: %v", err)
	}
	u := jarURL(t)

	jar.SetCookies(u, []*http.Cookie{{Name: "sid", Value: "old"}})
	jar.SetCookies(u, []*http.Cookie{{Name: "sid", Value: "new"}})

	cookies := jar.Cookies(u)
	if len(cookies) != 1 || cookies[0].Value != "new" {
		t.Fatalf("expected the newer value to win, got %+v", cookies)
	}
}

func TestFileJarHonorsExpiry(t *testing.T) {
	t.Parallel()
	jar, err := out.NewFileJar(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("new jar: %v", err)
	}
	u := jarURL(t)

	jar.SetCookies(u, []*http.Cookie{
		{Name: "stale", Value: "x", Expires: time.Now().Add(-time.Hour)},
		{Name: "deleted", Value: "y", MaxAge: -1},
		{Name: "live", Value: "z"},
	})

	cookies := jar.Cookies(u)
	if len(cookies) != 1 || cookies[0].Name != "live" {
		t.Fatalf("expected only the live cookie, got %+v", cookies)
	}
}

func TestFileJarClear(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	jar, err := out.NewFileJar(path)
	if err != nil {
		t.Fatalf("new jar: %v", err)
	}
	u := jarURL(t)
	jar.SetCookies(u, []*http.Cookie{{Name: "sid", Value: "abc"}})

	jar.Clear()
	if got := jar.Cookies(u); len(got) != 0 {
		t.Fatalf("expected empty jar, got %+v", got)
	}
	reopened, err := out.NewFileJar(path)
	if err != nil {
		t.Fatalf("reopen jar: %v", err)
	}
	if got := reopened.Cookies(u); len(got) != 0 {
		t.Fatalf("clear must persist, got %+v", got)
	}
}

func TestFileJarToleratesCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	jar, err := out.NewFileJar(path)
	if err != nil {
		t.Fatalf("a corrupt file must mean a fresh session, got %v", err)
	}
	if got := jar.Cookies(jarURL(t)); len(got) != 0 {
		t.Fatalf("expected no cookies, got %+v", got)
	}
}
