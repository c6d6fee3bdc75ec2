package valkey

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kabang/kabang/core/config"
	valkeylib "github.com/valkey-io/valkey-go"
)

const DefaultConnectTimeout = 5 * time.Second

type Config struct {
	Address        string
	Password       string
	DB             int
	KeyPrefix      string
	ConnectTimeout time.Duration
}

// ConfigFrom builds a client config from the application settings.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Address:        cfg.Database.ValkeyAddress,
		Password:       cfg.Database.ValkeyPassword,
		DB:             cfg.Database.ValkeyDB,
		KeyPrefix:      cfg.Database.ValkeyKeyPrefix,
		ConnectTimeout: cfg.Failover.ConnectTimeout,
	}
}

// Client wraps valkey-go with key prefixing and a handful of string helpers.
type Client struct {
	inner     valkeylib.Client
	keyPrefix string
}

// NewClient connects and pings within the configured timeout. The caller
// owns Close.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	opts := valkeylib.ClientOption{
		InitAddress:  []string{cfg.Address},
		SelectDB:     cfg.DB,
		Password:     cfg.Password,
		DisableCache: true,
	}

	inner, err := valkeylib.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create valkey client: %w", err)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := inner.Do(pingCtx, inner.B().Ping().Build()).Error(); err != nil {
		inner.Close()
		return nil, fmt.Errorf("failed to ping valkey at %s: %w", cfg.Address, err)
	}

	prefix := cfg.KeyPrefix
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}

	return &Client{inner: inner, keyPrefix: prefix}, nil
}

func (c *Client) Close() {
	if c.inner != nil {
		c.inner.Close()
	}
}

// Key joins parts with ":" under the configured prefix,
// e.g. Key("snapshot", "bangs") -> "kabang:snapshot:bangs".
func (c *Client) Key(parts ...string) string {
	if len(parts) == 0 {
		return strings.TrimSuffix(c.keyPrefix, ":")
	}
	return c.keyPrefix + strings.Join(parts, ":")
}

func (c *Client) Ping(ctx context.Context) error {
	return c.inner.Do(ctx, c.inner.B().Ping().Build()).Error()
}

// SetString stores value under key. A zero ttl keeps it forever.
func (c *Client) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl > 0 {
		return c.inner.Do(ctx, c.inner.B().Set().Key(key).Value(value).Ex(ttl).Build()).Error()
	}
	return c.inner.Do(ctx, c.inner.B().Set().Key(key).Value(value).Build()).Error()
}

// GetString returns the value under key. found is false on a NIL reply.
func (c *Client) GetString(ctx context.Context, key string) (value string, found bool, err error) {
	value, err = c.inner.Do(ctx, c.inner.B().Get().Key(key).Build()).ToString()
	if err != nil {
		if IsNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (c *Client) Del(ctx context.Context, key string) error {
	return c.inner.Do(ctx, c.inner.B().Del().Key(key).Build()).Error()
}

// IsNil reports whether err is a Valkey NIL response.
func IsNil(err error) bool {
	return valkeylib.IsValkeyNil(err)
}
