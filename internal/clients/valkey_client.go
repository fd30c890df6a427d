package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

const VALKEY_RETRIES = 3

type ValkeyOptions struct {
	Address  string
	Password string
	UseTLS   bool
	Logger   *slog.Logger
}

// ValkeyClient is a small byte cache on top of Valkey used to avoid
// re-reading the same subreddit listing on back-to-back runs.
type ValkeyClient struct {
	Client valkey.Client
	opts   ValkeyOptions
	logger *slog.Logger
	mu     sync.Mutex
}

func NewValkeyClient(opts ValkeyOptions) (*ValkeyClient, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	client, err := connectValkey(opts)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("[ValkeyClient] Successfully connected to valkey", slog.String("address", opts.Address))
	return &ValkeyClient{Client: client, opts: opts, logger: opts.Logger}, nil
}

func connectValkey(opts ValkeyOptions) (valkey.Client, error) {
	clientOpts := valkey.ClientOption{
		InitAddress:      []string{opts.Address},
		Password:         opts.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if opts.UseTLS {
		clientOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client, err := valkey.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	return client, nil
}

func (vc *ValkeyClient) recreateClient() {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	vc.logger.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := connectValkey(vc.opts)
	if err != nil {
		vc.logger.Error("[ValkeyClient] Recreate failed", slog.String("error", err.Error()))
		return
	}

	vc.Client.Close()
	vc.Client = client
}

func (vc *ValkeyClient) client() valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.Client
}

func (vc *ValkeyClient) Close() {
	vc.client().Close()
}

// Get returns the cached value and whether it was present.
func (vc *ValkeyClient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Get().Key(key).Build()
	}, VALKEY_RETRIES)

	value, err := res.AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("[ValkeyClient] get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key and (re)arms its expiry.
func (vc *ValkeyClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	seconds := expirySeconds(ttl)
	results := vc.DoMultiWithRetry(ctx, func(c valkey.Client) []valkey.Completed {
		return []valkey.Completed{
			c.B().Set().Key(key).Value(string(value)).Build(),
			c.B().Expire().Key(key).Seconds(seconds).Build(),
		}
	}, VALKEY_RETRIES)

	for _, res := range results {
		if err := res.Error(); err != nil {
			return fmt.Errorf("[ValkeyClient] set %s: %w", key, err)
		}
	}

	vc.logger.Debug("[ValkeyClient] Cached value", slog.String("key", key), slog.Duration("ttl", ttl))
	return nil
}

// expirySeconds rounds ttl up to whole seconds. EXPIRE with 0 deletes the
// key, so anything shorter than a second becomes one second.
func expirySeconds(ttl time.Duration) int64 {
	seconds := int64((ttl + time.Second - 1) / time.Second)
	return max(seconds, 1)
}

// DoMultiWithRetry retries only on connection errors. Commands are rebuilt
// for every attempt because valkey-go recycles them once they have been sent.
func (vc *ValkeyClient) DoMultiWithRetry(ctx context.Context, build func(c valkey.Client) []valkey.Completed, retries int) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult

	for i := 0; i < retries; i++ {
		c := vc.client()
		results = c.DoMulti(ctx, build(c)...)

		var err error
		for _, r := range results {
			if err = r.Error(); err != nil {
				break
			}
		}
		if !shouldRetry(err) {
			break
		}

		vc.logger.Warn("[ValkeyClient] Do Multi failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		vc.recreateClient()
		time.Sleep(250 * time.Millisecond)
	}

	return results
}

func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func(c valkey.Client) valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult

	for i := 0; i < retries; i++ {
		c := vc.client()
		result = c.Do(ctx, build(c))

		err := result.Error()
		if !shouldRetry(err) {
			break
		}

		vc.logger.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		vc.recreateClient()
		time.Sleep(250 * time.Millisecond)
	}

	return result
}

// shouldRetry is true for connection failures only. Server replies such
// as WRONGTYPE or a nil reply are final.
func shouldRetry(err error) bool {
	if err == nil || valkey.IsValkeyNil(err) {
		return false
	}
	return isConnectionError(err)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
