// Package config loads client settings from defaults, YAML files, and
// environment variables, in that order of precedence, and bridges them into
// a ready-to-use client builder.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/gaborage/go-restkit/logger"
	"github.com/gaborage/go-restkit/restclient"
)

// EnvPrefix is the prefix for environment variable overrides. Double
// underscores mark nesting, so RESTKIT_TIMEOUT__READ=5s becomes timeout.read
// while single underscores survive (RESTKIT_BASE_URL -> base_url).
const EnvPrefix = "RESTKIT_"

// Settings is the full client configuration surface.
type Settings struct {
	BaseURL string          `koanf:"base_url" validate:"required"`
	Timeout TimeoutSettings `koanf:"timeout"`
	Upload  UploadSettings  `koanf:"upload"`
	Headers []HeaderSetting `koanf:"headers"`
	Auth    AuthSettings    `koanf:"auth"`
	Retry   *RetrySettings  `koanf:"retry"`
	Log     LogSettings     `koanf:"log"`
}

// TimeoutSettings holds the connection and read timeouts.
type TimeoutSettings struct {
	Connect time.Duration `koanf:"connect" validate:"gt=0"`
	Read    time.Duration `koanf:"read" validate:"gt=0"`
}

// UploadSettings controls multipart file streaming.
type UploadSettings struct {
	BufferSize int `koanf:"buffer_size" validate:"gt=0"`
}

// HeaderSetting is one default header. A list, not a map, so duplicate keys
// and ordering survive the trip through configuration.
type HeaderSetting struct {
	Key   string `koanf:"key" validate:"required"`
	Value string `koanf:"value"`
}

// AuthSettings holds optional pre-injected authorization. Bearer wins when
// both are set.
type AuthSettings struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	Bearer   string `koanf:"bearer"`
}

// RetrySettings configures the fixed-delay retry policy.
type RetrySettings struct {
	Count      int           `koanf:"count" validate:"gte=0"`
	Delay      time.Duration `koanf:"delay" validate:"gte=0"`
	StatusFrom int           `koanf:"status_from" validate:"gte=0"`
	StatusTo   int           `koanf:"status_to" validate:"gtefield=StatusFrom"`
	RetryOn    []string      `koanf:"retry_on"`
}

// LogSettings configures the structured logger.
type LogSettings struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// Load reads settings from the given YAML file (optional), layered over
// defaults and under RESTKIT_* environment variables.
func Load(path string) (*Settings, error) {
	k, err := newKoanf()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}
	return finish(k)
}

// LoadBytes reads settings from raw YAML, layered the same way as Load.
// Used mainly by tests and embedded configuration.
func LoadBytes(b []byte) (*Settings, error) {
	k, err := newKoanf()
	if err != nil {
		return nil, err
	}
	if err := k.Load(rawbytes.Provider(b), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse config bytes: %w", err)
	}
	return finish(k)
}

func newKoanf() (*koanf.Koanf, error) {
	k := koanf.New(".")
	defaults := map[string]any{
		"timeout.connect":    restclient.DefaultConnectTimeout.String(),
		"timeout.read":       restclient.DefaultReadTimeout.String(),
		"upload.buffer_size": restclient.DefaultUploadBufferSize,
		"log.level":          "info",
		"log.pretty":         false,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	return k, nil
}

func finish(k *koanf.Koanf) (*Settings, error) {
	// Environment variables take the highest priority.
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, EnvPrefix)
			return strings.ReplaceAll(strings.ToLower(key), "__", "."), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings against their struct tags.
func Validate(s *Settings) error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Builder converts the settings into a configured client builder.
func (s *Settings) Builder(log logger.Logger) *restclient.Builder {
	b := restclient.NewBuilder(log, s.BaseURL).
		WithTimeouts(s.Timeout.Connect, s.Timeout.Read).
		WithUploadBufferSize(s.Upload.BufferSize)

	if len(s.Headers) > 0 {
		headers := make([]restclient.Header, 0, len(s.Headers))
		for _, h := range s.Headers {
			headers = append(headers, restclient.Header{Key: h.Key, Value: h.Value})
		}
		b = b.WithDefaultHeaders(headers...)
	}
	if s.Auth.Bearer != "" {
		b = b.WithBearerToken(s.Auth.Bearer)
	} else if s.Auth.Username != "" {
		b = b.WithBasicAuth(s.Auth.Username, s.Auth.Password)
	}
	if s.Retry != nil && s.Retry.Count > 0 {
		b = b.WithRetryPolicy(s.Retry.Policy())
	}
	return b
}

// NewLogger creates the logger described by the settings.
func (s *Settings) NewLogger() logger.Logger {
	return logger.New(s.Log.Level, s.Log.Pretty)
}

// Policy converts retry settings into the client's policy type.
func (r *RetrySettings) Policy() *restclient.RetryPolicy {
	retryOn := make([]restclient.ErrorType, 0, len(r.RetryOn))
	for _, kind := range r.RetryOn {
		retryOn = append(retryOn, restclient.ErrorType(kind))
	}
	return &restclient.RetryPolicy{
		Count:    r.Count,
		Delay:    r.Delay,
		Statuses: restclient.StatusRange{From: r.StatusFrom, To: r.StatusTo},
		RetryOn:  retryOn,
	}
}
