package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unkn0wn-root/pmgen/internal/postman"
)

func noEnv(string) string { return "" }

func runCLI(t *testing.T, getenv func(string) string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr, getenv)
	return code, stdout.String(), stderr.String()
}

func readCollection(t *testing.T, path string) postman.Collection {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var c postman.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return c
}

func TestRunWritesCollection(t *testing.T) {
	out := filepath.Join(t.TempDir(), "collection.json")
	code, stdout, stderr := runCLI(t, noEnv, "-out", out)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Created Authentication folder") ||
		!strings.Contains(stdout, "Total items so far: 8") {
		t.Fatalf("expected progress output, got %q", stdout)
	}

	c := readCollection(t, out)
	if len(c.Item) != 8 {
		t.Fatalf("expected 8 folders, got %d", len(c.Item))
	}
	if c.Item[0].Item[0].Request.Auth != nil || len(c.Item[0].Item[0].Request.Event) != 1 {
		t.Fatalf("unexpected login item %#v", c.Item[0].Item[0])
	}
}

func TestRunIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	if code, _, stderr := runCLI(t, noEnv, "-quiet", "-out", a); code != 0 {
		t.Fatalf("first run: %s", stderr)
	}
	if code, _, stderr := runCLI(t, noEnv, "-quiet", "-out", b); code != 0 {
		t.Fatalf("second run: %s", stderr)
	}
	first, _ := os.ReadFile(a)
	second, _ := os.ReadFile(b)
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical output across runs")
	}
}

func TestRunCheck(t *testing.T) {
	out := filepath.Join(t.TempDir(), "collection.json")
	if code, _, stderr := runCLI(t, noEnv, "-quiet", "-out", out); code != 0 {
		t.Fatalf("generate: %s", stderr)
	}
	code, stdout, _ := runCLI(t, noEnv, "-check", "-out", out)
	if code != 0 || !strings.Contains(stdout, "up to date") {
		t.Fatalf("expected up to date, got %d %q", code, stdout)
	}

	if err := os.WriteFile(out, []byte("{}\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	code, stdout, _ = runCLI(t, noEnv, "-check", "-out", out)
	if code != 1 {
		t.Fatalf("expected exit 1 for stale file, got %d", code)
	}
	if !strings.Contains(stdout, "out of date") || !strings.Contains(stdout, "+++") {
		t.Fatalf("expected diff and warning, got %q", stdout)
	}
	data, _ := os.ReadFile(out)
	if string(data) != "{}\n" {
		t.Fatalf("check must not rewrite the file")
	}
}

func TestRunSettingsPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "pmgen.yaml")
	settings := "collection:\n  base_url: https://file.example.com\n  ws_endpoint: wss://file.example.com/graphql\n  name: From File\n"
	if err := os.WriteFile(cfg, []byte(settings), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	env := map[string]string{
		"PMGEN_BASE_URL": "https://env.example.com",
		"PMGEN_OUT":      filepath.Join(dir, "env.json"),
	}
	getenv := func(k string) string { return env[k] }

	code, _, stderr := runCLI(t, getenv, "-quiet", "-config", cfg, "-base-url", "https://flag.example.com")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	c := readCollection(t, filepath.Join(dir, "env.json"))
	vars := map[string]string{}
	for _, v := range c.Variable {
		vars[v.Key] = v.Value
	}
	if vars["base_url"] != "https://flag.example.com" {
		t.Fatalf("flag should win over env and file, got %q", vars["base_url"])
	}
	if vars["ws_endpoint"] != "wss://file.example.com/graphql" {
		t.Fatalf("file value should be kept, got %q", vars["ws_endpoint"])
	}
	if c.Info.Name != "From File" {
		t.Fatalf("unexpected name %q", c.Info.Name)
	}
}

func TestRunHTTPOut(t *testing.T) {
	dir := t.TempDir()
	httpOut := filepath.Join(dir, "api.http")
	code, _, stderr := runCLI(t, noEnv, "-quiet", "-out", filepath.Join(dir, "c.json"), "-http-out", httpOut)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	data, err := os.ReadFile(httpOut)
	if err != nil {
		t.Fatalf("read http file: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Generated by pmgen dev\n") {
		t.Fatalf("unexpected http file header: %q", string(data)[:40])
	}
}

func TestRunStdout(t *testing.T) {
	code, stdout, stderr := runCLI(t, noEnv, "-stdout")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var c postman.Collection
	if err := json.Unmarshal([]byte(stdout), &c); err != nil {
		t.Fatalf("stdout is not a collection: %v", err)
	}
	if _, err := os.Stat("Tifto_Admin_API_Collection.postman_collection.json"); err == nil {
		t.Fatalf("stdout mode must not write the default file")
	}
}

func TestRunSimulateLogin(t *testing.T) {
	resp := filepath.Join(t.TempDir(), "login.json")
	body := `{"data":{"ownerLogin":{"token":"eyJhbGciOi"}}}`
	if err := os.WriteFile(resp, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	code, stdout, stderr := runCLI(t, noEnv, "-simulate-login", resp)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "token = eyJhbGciOi") {
		t.Fatalf("expected captured token, got %q", stdout)
	}

	code, stdout, _ = runCLI(t, noEnv, "-simulate-login", resp, "-simulate-status", "401")
	if code != 0 || !strings.Contains(stdout, "no collection variables set") {
		t.Fatalf("expected no variables for 401, got %d %q", code, stdout)
	}

	if err := os.WriteFile(resp, []byte("<html>oops</html>"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	code, stdout, stderr = runCLI(t, noEnv, "-simulate-login", resp)
	if code != 0 || stderr != "" {
		t.Fatalf("expected malformed body to set nothing, got %d %q", code, stderr)
	}
	if !strings.Contains(stdout, "not valid JSON; no collection variables set") {
		t.Fatalf("unexpected output %q", stdout)
	}
}

func TestRunErrors(t *testing.T) {
	if code, _, _ := runCLI(t, noEnv, "-no-such-flag"); code != 2 {
		t.Fatalf("expected exit 2 for bad flag, got %d", code)
	}
	code, _, stderr := runCLI(t, noEnv, "-config", filepath.Join(t.TempDir(), "missing.toml"))
	if code != 1 || !strings.Contains(stderr, "config error") {
		t.Fatalf("expected config error, got %d %q", code, stderr)
	}
	code, _, stderr = runCLI(t, noEnv, "-simulate-login", filepath.Join(t.TempDir(), "missing.json"))
	if code != 1 || !strings.Contains(stderr, "filesystem error") {
		t.Fatalf("expected filesystem error, got %d %q", code, stderr)
	}
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, noEnv, "-version")
	if code != 0 || !strings.HasPrefix(stdout, "pmgen dev\n") {
		t.Fatalf("unexpected version output %d %q", code, stdout)
	}
}
