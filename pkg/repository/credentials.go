package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/frizzly/api/pkg/config"
	"github.com/spf13/viper"
)

// CredentialsDir is the last place the credentials file is looked up.
const CredentialsDir = "/etc/frizzly"

var ErrCredentialsNotFound = errors.New("credentials file not found")

// Credentials is the content of the store credentials file (JSON or YAML).
type Credentials struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	AuthSource string `mapstructure:"auth_source"`
}

// CredentialSearchPaths lists the candidate locations for name, in lookup
// order: an absolute name as given, then the executable's directory, the
// working directory and CredentialsDir.
func CredentialSearchPaths(name string) []string {
	if filepath.IsAbs(name) {
		return []string{name}
	}

	var paths []string
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), name))
	}
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, name))
	}
	return append(paths, filepath.Join(CredentialsDir, name))
}

// FindCredentials returns the first existing path.
func FindCredentials(paths []string) (string, error) {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w in any of: %s", ErrCredentialsNotFound, strings.Join(paths, ", "))
}

func LoadCredentials(path string) (*Credentials, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
		v.SetConfigType("json")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read credentials %s: %w", path, err)
	}

	var creds Credentials
	if err := v.Unmarshal(&creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials %s: %w", path, err)
	}
	return &creds, nil
}

// Apply overlays the non-empty credential fields onto cfg.
func (c *Credentials) Apply(cfg config.MongoDBConfig) config.MongoDBConfig {
	if c.URI != "" {
		cfg.URI = c.URI
	}
	if c.Database != "" {
		cfg.Database = c.Database
	}
	if c.Username != "" {
		cfg.Username = c.Username
		cfg.Password = c.Password
	}
	if c.AuthSource != "" {
		cfg.AuthSource = c.AuthSource
	}
	return cfg
}

// ResolveMongoConfig merges the credentials file into cfg. It returns the
// path used, or "" when no file was found but cfg already names a server.
func ResolveMongoConfig(cfg config.MongoDBConfig, paths []string) (config.MongoDBConfig, string, error) {
	path, err := FindCredentials(paths)
	if err != nil {
		if cfg.URI != "" {
			return cfg, "", nil
		}
		return cfg, "", err
	}

	creds, err := LoadCredentials(path)
	if err != nil {
		return cfg, path, err
	}
	return creds.Apply(cfg), path, nil
}
