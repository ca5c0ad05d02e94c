package wrapper

import (
	"context"
	"crypto/ed25519"
	"strconv"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/mint-authority/pkg/config"
)

var (
	// ErrUnsuportedConversion indicates the wrapper does not implement conversion from the source type
	ErrUnsuportedConversion = errors.New("config: wrapper conversion from source type not implemented")

	// ErrInvalidPublicKey indicates the source value isn't a 32 byte base58 encoded key
	ErrInvalidPublicKey = errors.New("config: invalid public key")
)

// converter turns a raw source value into a typed value. Returning
// ErrUnsuportedConversion signals an unexpected source type.
type converter[T any] func(raw interface{}) (T, error)

// typedConfig is the shared implementation behind every typed wrapper. It
// remembers the last successfully observed value so callers get a best-effort
// answer when the source errors.
type typedConfig[T any] struct {
	override     config.Config
	defaultValue T
	convert      converter[T]

	stateMu   sync.RWMutex
	lastValue T
}

func newTypedConfig[T any](override config.Config, defaultValue T, convert converter[T]) *typedConfig[T] {
	return &typedConfig[T]{
		override:     override,
		defaultValue: defaultValue,
		convert:      convert,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *typedConfig[T]) GetSafe(ctx context.Context) (T, error) {
	override, err := c.override.Get(ctx)

	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()

	if err == config.ErrNoValue {
		c.setLastValue(c.defaultValue)
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}

	newValue, err := c.convert(override)
	if err != nil {
		return lastValue, err
	}

	c.setLastValue(newValue)
	return newValue, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *typedConfig[T]) Get(ctx context.Context) T {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *typedConfig[T]) Shutdown() {
	c.override.Shutdown()
}

func (c *typedConfig[T]) setLastValue(value T) {
	c.stateMu.Lock()
	c.lastValue = value
	c.stateMu.Unlock()
}

// NewBoolConfig returns a new bool config utility wrapper. Byte array sources
// are parsed with strconv.ParseBool.
func NewBoolConfig(override config.Config, defaultValue bool) config.Bool {
	return newTypedConfig(override, defaultValue, func(raw interface{}) (bool, error) {
		switch typed := raw.(type) {
		case []byte:
			return strconv.ParseBool(string(typed))
		case bool:
			return typed, nil
		default:
			return false, ErrUnsuportedConversion
		}
	})
}

// NewStringConfig returns a new string config utility wrapper
func NewStringConfig(override config.Config, defaultValue string) config.String {
	return newTypedConfig(override, defaultValue, func(raw interface{}) (string, error) {
		switch typed := raw.(type) {
		case []byte:
			return string(typed), nil
		case string:
			return typed, nil
		default:
			return "", ErrUnsuportedConversion
		}
	})
}

// NewPublicKeyConfig returns a new public key config utility wrapper. String
// and byte array sources are base58 decoded, while ed25519.PublicKey sources are
// used as is.
func NewPublicKeyConfig(override config.Config, defaultValue ed25519.PublicKey) config.PublicKey {
	return newTypedConfig(override, defaultValue, func(raw interface{}) (ed25519.PublicKey, error) {
		var decoded []byte
		switch typed := raw.(type) {
		case []byte:
			return decodePublicKey(string(typed))
		case string:
			return decodePublicKey(typed)
		case ed25519.PublicKey:
			decoded = typed
		default:
			return nil, ErrUnsuportedConversion
		}

		if len(decoded) != ed25519.PublicKeySize {
			return nil, errors.Wrapf(ErrInvalidPublicKey, "invalid length: %d", len(decoded))
		}
		return decoded, nil
	})
}

func decodePublicKey(encoded string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(encoded)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}

	if len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(ErrInvalidPublicKey, "invalid length: %d", len(decoded))
	}
	return decoded, nil
}
