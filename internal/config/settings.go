package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/pmgen/internal/errdef"
)

const (
	SettingsFormatTOML SettingsFormat = "toml"
	SettingsFormatYAML SettingsFormat = "yaml"
	SettingsFormatJSON SettingsFormat = "json"

	settingsBaseName = "pmgen"

	EnvBaseURL    = "PMGEN_BASE_URL"
	EnvWSEndpoint = "PMGEN_WS_ENDPOINT"
	EnvOutput     = "PMGEN_OUT"
	EnvHTTPOutput = "PMGEN_HTTP_OUT"
)

type Settings struct {
	Output     string             `json:"output"      toml:"output"      yaml:"output"`
	HTTPOutput string             `json:"http_output" toml:"http_output" yaml:"http_output"`
	Collection CollectionSettings `json:"collection"  toml:"collection"  yaml:"collection"`
}

// Empty fields fall back to the built-in collection metadata.
type CollectionSettings struct {
	Name        string `json:"name"        toml:"name"        yaml:"name"`
	Backend     string `json:"backend"     toml:"backend"     yaml:"backend"`
	Description string `json:"description" toml:"description" yaml:"description"`
	BaseURL     string `json:"base_url"    toml:"base_url"    yaml:"base_url"`
	WSEndpoint  string `json:"ws_endpoint" toml:"ws_endpoint" yaml:"ws_endpoint"`
	ExporterID  string `json:"exporter_id" toml:"exporter_id" yaml:"exporter_id"`
}

type SettingsFormat string

// SettingsHandle records where settings came from. Path is empty when no file was found.
type SettingsHandle struct {
	Path   string
	Format SettingsFormat
}

// LoadSettings reads explicit when set, otherwise the first of pmgen.toml,
// pmgen.yaml, pmgen.yml and pmgen.json found in dir. A missing explicit file
// is an error; missing candidates just yield empty settings.
func LoadSettings(dir, explicit string) (Settings, SettingsHandle, error) {
	if strings.TrimSpace(explicit) != "" {
		format, err := formatFromPath(explicit)
		if err != nil {
			return Settings{}, SettingsHandle{}, err
		}
		data, err := os.ReadFile(explicit)
		if err != nil {
			return Settings{}, SettingsHandle{}, errdef.Wrap(errdef.CodeConfig, err, "read settings %q", explicit)
		}
		settings, err := decodeSettings(data, format)
		if err != nil {
			return Settings{}, SettingsHandle{}, errdef.Wrap(errdef.CodeConfig, err, "parse settings %q", explicit)
		}
		return settings, SettingsHandle{Path: explicit, Format: format}, nil
	}

	candidates := []SettingsHandle{
		{Path: filepath.Join(dir, settingsBaseName+".toml"), Format: SettingsFormatTOML},
		{Path: filepath.Join(dir, settingsBaseName+".yaml"), Format: SettingsFormatYAML},
		{Path: filepath.Join(dir, settingsBaseName+".yml"), Format: SettingsFormatYAML},
		{Path: filepath.Join(dir, settingsBaseName+".json"), Format: SettingsFormatJSON},
	}

	var accumulated error
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate.Path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			accumulated = errors.Join(
				accumulated,
				errdef.Wrap(errdef.CodeConfig, err, "read settings %q", candidate.Path),
			)
			continue
		}

		settings, err := decodeSettings(data, candidate.Format)
		if err != nil {
			return Settings{}, SettingsHandle{}, errdef.Wrap(
				errdef.CodeConfig,
				err,
				"parse settings %q",
				candidate.Path,
			)
		}
		return settings, candidate, nil
	}

	if accumulated != nil {
		return Settings{}, SettingsHandle{}, accumulated
	}
	return Settings{}, SettingsHandle{}, nil
}

func formatFromPath(path string) (SettingsFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return SettingsFormatTOML, nil
	case ".yaml", ".yml":
		return SettingsFormatYAML, nil
	case ".json":
		return SettingsFormatJSON, nil
	default:
		return "", errdef.New(errdef.CodeConfig, "unsupported settings file %q", path)
	}
}

func decodeSettings(data []byte, format SettingsFormat) (Settings, error) {
	var settings Settings
	switch format {
	case SettingsFormatTOML:
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&settings); err != nil {
			return Settings{}, err
		}
	case SettingsFormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
			return Settings{}, err
		}
	case SettingsFormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&settings); err != nil {
			return Settings{}, err
		}
	default:
		return Settings{}, fmt.Errorf("unsupported settings format %q", format)
	}
	return settings, nil
}

// ApplyEnv overlays PMGEN_* environment values onto s.
func ApplyEnv(s Settings, getenv func(string) string) Settings {
	if getenv == nil {
		return s
	}
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		s.Collection.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvWSEndpoint)); v != "" {
		s.Collection.WSEndpoint = v
	}
	if v := strings.TrimSpace(getenv(EnvOutput)); v != "" {
		s.Output = v
	}
	if v := strings.TrimSpace(getenv(EnvHTTPOutput)); v != "" {
		s.HTTPOutput = v
	}
	return s
}
