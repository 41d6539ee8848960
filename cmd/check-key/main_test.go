package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

// chdirTemp keeps tests away from any real .env in the working tree.
func chdirTemp(t *testing.T) {
	t.Helper()
	origWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWD) })
}

func TestMissingKey(t *testing.T) {
	chdirTemp(t)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_BASE_URL", "")

	if code := run(nil); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestValidKeyAgainstStub(t *testing.T) {
	chdirTemp(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[{"name":"models/gemini-2.5-flash"}]}`))
	}))
	defer server.Close()

	t.Setenv("GEMINI_API_KEY", "AIzaTestKey1234")
	t.Setenv("GEMINI_BASE_URL", server.URL)

	if code := run(nil); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
}

func TestUnauthorizedKey(t *testing.T) {
	chdirTemp(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer server.Close()

	t.Setenv("GEMINI_API_KEY", "bogus")
	t.Setenv("GEMINI_BASE_URL", server.URL)

	if code := run(nil); code != 4 {
		t.Fatalf("exit code = %d, want 4", code)
	}
}

func TestNetworkFailure(t *testing.T) {
	chdirTemp(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	t.Setenv("GEMINI_API_KEY", "AIzaTestKey1234")
	t.Setenv("GEMINI_BASE_URL", server.URL)

	if code := run(nil); code != 3 {
		t.Fatalf("exit code = %d, want 3", code)
	}
}

func TestEnvFileProvidesKey(t *testing.T) {
	chdirTemp(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	if err := os.WriteFile(".env", []byte("GEMINI_API_KEY=AIzaFromDotEnv\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv will not override a variable that is merely set to "";
	// register the restore via t.Setenv, then clear it for real.
	t.Setenv("GEMINI_API_KEY", "")
	os.Unsetenv("GEMINI_API_KEY")
	t.Setenv("GEMINI_BASE_URL", server.URL)

	if code := run(nil); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
}

func TestBadFlag(t *testing.T) {
	chdirTemp(t)
	if code := run([]string{"-definitely-not-a-flag"}); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}
