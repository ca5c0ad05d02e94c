package env

import (
	"context"
	"crypto/ed25519"
	"os"
	"strings"

	"github.com/code-payments/mint-authority/pkg/config"
	"github.com/code-payments/mint-authority/pkg/config/wrapper"
)

type conf struct {
	val string
}

// NewConfig returns a config backed by the environment variable named key.
// The value is read once, at construction.
func NewConfig(key string) config.Config {
	return &conf{
		val: strings.TrimSpace(os.Getenv(strings.ToUpper(key))),
	}
}

// Get implements Config.Get
func (c *conf) Get(ctx context.Context) (interface{}, error) {
	if len(c.val) == 0 {
		return nil, config.ErrNoValue
	}

	return []byte(c.val), nil
}

// Shutdown implements Config.Shutdown
func (c *conf) Shutdown() {
}

// NewStringConfig creates a env-based string config
func NewStringConfig(key string, defaultValue string) config.String {
	return wrapper.NewStringConfig(NewConfig(key), defaultValue)
}

// NewBoolConfig creates a env-based bool config
func NewBoolConfig(key string, defaultValue bool) config.Bool {
	return wrapper.NewBoolConfig(NewConfig(key), defaultValue)
}

// NewPublicKeyConfig creates a env-based public key config from a base58
// encoded address
func NewPublicKeyConfig(key string, defaultValue ed25519.PublicKey) config.PublicKey {
	return wrapper.NewPublicKeyConfig(NewConfig(key), defaultValue)
}
