package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigOptions(t *testing.T) {
	cfg := Config{Host: "redis", Port: "6380", Password: "secret", DB: 2, PoolSize: 4, Timeout: 300 * time.Millisecond}

	opts := cfg.options()

	assert.Equal(t, "redis:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 4, opts.PoolSize)
	assert.Equal(t, 300*time.Millisecond, opts.DialTimeout)
	assert.Equal(t, 300*time.Millisecond, opts.ReadTimeout)
	assert.Equal(t, 300*time.Millisecond, opts.WriteTimeout)
}

func TestConfigAddr_IPv6(t *testing.T) {
	cfg := Config{Host: "::1", Port: "6379"}
	assert.Equal(t, "[::1]:6379", cfg.Addr())
}
