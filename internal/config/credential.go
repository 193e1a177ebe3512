package config

import (
	"context"
	"fmt"
	"os"
)

// EmbeddedAccessKey is the backend credential compiled into the binary:
//
//	go build -ldflags "-X github.com/sbtransport/sbtconsole/internal/config.EmbeddedAccessKey=..."
var EmbeddedAccessKey = ""

// CredentialEnvVars are the environment variables checked for the backend
// credential, in order.
var CredentialEnvVars = []string{"BACKEND_API_KEY", "API_KEY"}

// CredentialProvider is one source of the backend access credential.
type CredentialProvider interface {
	Name() string
	AccessKey(ctx context.Context) (string, error)
}

// Credential is the resolved backend credential and where it came from.
type Credential struct {
	Key    string
	Source string
}

type staticProvider struct {
	name string
	keys []string
}

// Static returns a provider answering the first non-empty key.
func Static(name string, keys ...string) CredentialProvider {
	return staticProvider{name: name, keys: keys}
}

func (p staticProvider) Name() string { return p.name }

func (p staticProvider) AccessKey(context.Context) (string, error) {
	for _, k := range p.keys {
		if k != "" {
			return k, nil
		}
	}
	return "", nil
}

type envProvider struct {
	vars []string
}

// Env returns a provider reading the first non-empty variable of vars.
func Env(vars ...string) CredentialProvider {
	return envProvider{vars: vars}
}

func (p envProvider) Name() string { return "environment" }

func (p envProvider) AccessKey(context.Context) (string, error) {
	for _, v := range p.vars {
		if k := os.Getenv(v); k != "" {
			return k, nil
		}
	}
	return "", nil
}

// Embedded is the first credential source: the build-time value, then the
// config file value.
func (c *Config) Embedded() CredentialProvider {
	return Static("embedded", EmbeddedAccessKey, c.Backend.APIKey)
}

// ResolveCredential asks each provider in turn and returns the first
// non-empty key. A zero Credential means none is configured; that is not an
// error here, the backend client reports it per operation.
func ResolveCredential(ctx context.Context, providers ...CredentialProvider) (Credential, error) {
	for _, p := range providers {
		key, err := p.AccessKey(ctx)
		if err != nil {
			return Credential{}, fmt.Errorf("read credential from %s: %w", p.Name(), err)
		}
		if key != "" {
			return Credential{Key: key, Source: p.Name()}, nil
		}
	}
	return Credential{}, nil
}
