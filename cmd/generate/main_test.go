package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

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

func TestMissingPrompt(t *testing.T) {
	chdirTemp(t)
	t.Setenv("GEMINI_API_KEY", "AIzaTest")

	if code := run(nil); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestMissingKey(t *testing.T) {
	chdirTemp(t)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_BASE_URL", "")

	if code := run([]string{"--prompt", "hello"}); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestFallbackSuccess(t *testing.T) {
	chdirTemp(t)
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"candidates":[{"output":"hi there"}]}`))
	}))
	defer server.Close()

	t.Setenv("GEMINI_API_KEY", "AIzaTest")
	t.Setenv("GEMINI_BASE_URL", server.URL)

	if code := run([]string{"--prompt", "say hi", "-no-sdk"}); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if gotPath != "/v1beta2/models/gemini-2.5-flash:generateText" {
		t.Errorf("path = %s: default model should be used", gotPath)
	}
}

func TestModelFlag(t *testing.T) {
	chdirTemp(t)
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	t.Setenv("GEMINI_API_KEY", "AIzaTest")
	t.Setenv("GEMINI_BASE_URL", server.URL)

	if code := run([]string{"--model", "gemini-2.5-pro", "--prompt", "p", "-no-sdk"}); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if gotPath != "/v1beta2/models/gemini-2.5-pro:generateText" {
		t.Errorf("path = %s", gotPath)
	}
}

func TestFallbackTransportFailure(t *testing.T) {
	chdirTemp(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	t.Setenv("GEMINI_API_KEY", "AIzaTest")
	t.Setenv("GEMINI_BASE_URL", server.URL)

	if code := run([]string{"--prompt", "p", "-no-sdk"}); code != 3 {
		t.Fatalf("exit code = %d, want 3", code)
	}
}

func TestDisableSDKViaConfig(t *testing.T) {
	chdirTemp(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"output":"via config"}]}`))
	}))
	defer server.Close()

	if err := os.WriteFile("config.yaml", []byte("disable_sdk: true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GEMINI_API_KEY", "AIzaTest")
	t.Setenv("GEMINI_BASE_URL", server.URL)

	if code := run([]string{"--prompt", "p", "-config", "config.yaml"}); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
}
