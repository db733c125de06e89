package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath         = "."
	defaultBcryptCost   = 12
	defaultAPITimeout   = 10 * time.Second
	defaultCacheDBName  = "ecell_accounts.db"
)

// Provider names accepted by dataSource.provider.
const (
	ProviderFirebase = "firebase"
	ProviderREST     = "rest"
	ProviderHybrid   = "hybrid"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	// DataSource selects the remote account source and its feature flags.
	DataSource *DataSourceConfig `json:"dataSource" yaml:"dataSource"`

	// Firebase configuration for the auth provider and document store.
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// API configuration for the portal HTTP backend.
	API *APIConfig `json:"api" yaml:"api"`

	// Cache configuration for the on-device account store.
	Cache *CacheConfig `json:"cache" yaml:"cache"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// DataSourceConfig selects which remote account source backs the sync layer.
type DataSourceConfig struct {
	// Provider type: "firebase", "rest", or "hybrid"
	Provider string `json:"provider" yaml:"provider"`

	// Route team-member listing through the HTTP API (hybrid provider)
	UseAPIForTeamMembers bool `json:"useApiForTeamMembers" yaml:"useApiForTeamMembers"`

	// Fall back to Firebase when the HTTP API fails (hybrid provider)
	EnableAPIFallback bool `json:"enableApiFallback" yaml:"enableApiFallback"`

	// Write fetched team members through to the local cache
	CacheTeamMembers bool `json:"cacheTeamMembers" yaml:"cacheTeamMembers"`
}

// FirebaseConfig defines the Firebase project wiring.
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	APIKey          string `json:"apiKey" yaml:"apiKey"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// APIConfig defines the portal HTTP backend wiring.
type APIConfig struct {
	BaseURL    string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout    time.Duration `json:"timeout" yaml:"timeout"`
	MaxRetries int           `json:"maxRetries" yaml:"maxRetries"`
}

// CacheConfig defines the on-device cache store wiring.
type CacheConfig struct {
	// Path to the SQLite database file; empty means the default name in the
	// working directory.
	Path string `json:"path" yaml:"path"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: FIREBASE_APIKEY -> firebase.apiKey (not firebase.apikey)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.DataSource == nil {
		cfg.DataSource = &DataSourceConfig{Provider: ProviderFirebase}
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = ProviderFirebase
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = defaultBcryptCost
	}

	if cfg.API == nil {
		cfg.API = &APIConfig{}
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = defaultAPITimeout
	}

	if cfg.Cache == nil {
		cfg.Cache = &CacheConfig{}
	}
	if strings.TrimSpace(cfg.Cache.Path) == "" {
		cfg.Cache.Path = defaultCacheDBName
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
