package gallery

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultGallery []byte

// ConfigFormat is the syntax of a configuration document.
type ConfigFormat string

const (
	FormatYAML ConfigFormat = "yaml"
	FormatJSON ConfigFormat = "json"
)

// Loader loads gallery configuration from files.
type Loader struct {
	// ExpandEnv enables ${VAR} and ${VAR:-default} expansion.
	ExpandEnv bool
	// Validate enables configuration validation.
	Validate bool
}

// NewLoader creates a loader that expands the environment and validates.
func NewLoader() *Loader {
	return &Loader{ExpandEnv: true, Validate: true}
}

// LoadFile loads configuration from a .yaml, .yml or .json file.
func (l *Loader) LoadFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to access config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidConfig, path)
	}

	var format ConfigFormat
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".json":
		format = FormatJSON
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrInvalidConfig, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()
	return l.Load(f, format)
}

// Load reads configuration from r. Values absent from the document keep
// the DefaultConfig values.
func (l *Loader) Load(r io.Reader, format ConfigFormat) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if l.ExpandEnv {
		expanded, err := expandEnv(string(data))
		if err != nil {
			return nil, err
		}
		data = []byte(expanded)
	}

	cfg := DefaultConfig()
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, cfg)
	case FormatJSON:
		err = json.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidConfig, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if l.Validate {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadDefault returns the built-in formula gallery.
func (l *Loader) LoadDefault() (*Config, error) {
	return l.Load(strings.NewReader(string(defaultGallery)), FormatYAML)
}

var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*|:\?[^}]*)?\}`)

// expandEnv replaces ${VAR}, ${VAR:-default} and ${VAR:?message}. Bare
// $VAR is left alone.
func expandEnv(input string) (string, error) {
	var missing []string
	out := envPattern.ReplaceAllStringFunc(input, func(match string) string {
		name, modifier, _ := strings.Cut(match[2:len(match)-1], ":")
		value, ok := os.LookupEnv(name)
		switch {
		case strings.HasPrefix(modifier, "-"):
			if !ok || value == "" {
				return modifier[1:]
			}
		case strings.HasPrefix(modifier, "?"):
			if !ok || value == "" {
				missing = append(missing, fmt.Sprintf("%s: %s", name, modifier[1:]))
				return match
			}
		}
		return value
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingEnvVar, strings.Join(missing, ", "))
	}
	return out, nil
}
