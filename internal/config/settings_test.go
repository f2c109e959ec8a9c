package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/unkn0wn-root/pmgen/internal/errdef"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadSettingsMissing(t *testing.T) {
	settings, handle, err := LoadSettings(t.TempDir(), "")
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if handle.Path != "" {
		t.Fatalf("expected empty handle, got %#v", handle)
	}
	if settings != (Settings{}) {
		t.Fatalf("expected zero settings, got %#v", settings)
	}
}

func TestLoadSettingsTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pmgen.toml"), `
output = "out/collection.json"

[collection]
name = "Staging API"
base_url = "https://staging.example.com"
`)
	// toml wins over yaml when both exist
	writeFile(t, filepath.Join(dir, "pmgen.yaml"), "output: ignored.json\n")

	settings, handle, err := LoadSettings(dir, "")
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if handle.Format != SettingsFormatTOML {
		t.Fatalf("expected toml handle, got %#v", handle)
	}
	if settings.Output != "out/collection.json" {
		t.Fatalf("unexpected output %q", settings.Output)
	}
	if settings.Collection.Name != "Staging API" ||
		settings.Collection.BaseURL != "https://staging.example.com" {
		t.Fatalf("unexpected collection settings %#v", settings.Collection)
	}
}

func TestLoadSettingsYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pmgen.yml"), `
http_output: api.http
collection:
  ws_endpoint: wss://example.com/graphql
  exporter_id: example
`)
	settings, handle, err := LoadSettings(dir, "")
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if handle.Format != SettingsFormatYAML {
		t.Fatalf("expected yaml handle, got %#v", handle)
	}
	if settings.HTTPOutput != "api.http" ||
		settings.Collection.WSEndpoint != "wss://example.com/graphql" ||
		settings.Collection.ExporterID != "example" {
		t.Fatalf("unexpected settings %#v", settings)
	}
}

func TestLoadSettingsYAMLRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pmgen.yaml"), "outptu: typo.json\n")
	if _, _, err := LoadSettings(dir, ""); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestLoadSettingsJSONExplicit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	writeFile(t, path, `{"output":"x.json","collection":{"description":"d"}}`)

	settings, handle, err := LoadSettings(t.TempDir(), path)
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if handle.Path != path || handle.Format != SettingsFormatJSON {
		t.Fatalf("unexpected handle %#v", handle)
	}
	if settings.Output != "x.json" || settings.Collection.Description != "d" {
		t.Fatalf("unexpected settings %#v", settings)
	}
}

func TestLoadSettingsExplicitErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := LoadSettings(dir, filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatalf("expected error for missing explicit file")
	}
	ini := filepath.Join(dir, "pmgen.ini")
	writeFile(t, ini, "output=x")
	if _, _, err := LoadSettings(dir, ini); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `{"output":`)
	if _, _, err := LoadSettings(dir, bad); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadSettingsRejectsUnknownKeys(t *testing.T) {
	cases := map[string]string{
		"pmgen.toml": "[collection]\nbase_uri = \"https://typo.example.com\"\n",
		"pmgen.yaml": "collection:\n  base_uri: https://typo.example.com\n",
		"pmgen.json": `{"collection":{"base_uri":"https://typo.example.com"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			writeFile(t, path, body)
			_, _, err := LoadSettings(filepath.Dir(path), path)
			if err == nil {
				t.Fatalf("expected unknown key error for %s", name)
			}
			if errdef.CodeOf(err) != errdef.CodeConfig {
				t.Fatalf("expected config error code, got %q", errdef.CodeOf(err))
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvBaseURL:    " https://env.example.com ",
		EnvOutput:     "env.json",
		EnvHTTPOutput: "",
	}
	base := Settings{
		Output:     "file.json",
		HTTPOutput: "file.http",
		Collection: CollectionSettings{WSEndpoint: "wss://file"},
	}
	got := ApplyEnv(base, func(key string) string { return env[key] })
	if got.Collection.BaseURL != "https://env.example.com" {
		t.Fatalf("unexpected base url %q", got.Collection.BaseURL)
	}
	if got.Output != "env.json" {
		t.Fatalf("env output should override file, got %q", got.Output)
	}
	if got.HTTPOutput != "file.http" || got.Collection.WSEndpoint != "wss://file" {
		t.Fatalf("unset env values must keep file values: %#v", got)
	}
	if ApplyEnv(base, nil) != base {
		t.Fatalf("nil getenv should be a no-op")
	}
}
