package redis

import (
	"context"
	"testing"
	"time"

	"github.com/MrSnakeDoc/stashlink/internal/logger"
)

func validOptions() ConnectOptions {
	return ConnectOptions{
		Addr:           "127.0.0.1:1",
		DialTimeout:    50 * time.Millisecond,
		ConnectTimeout: 200 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    50 * time.Millisecond,
		WarnThreshold:  1,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ConnectOptions)
		wantErr bool
	}{
		{"valid", func(*ConnectOptions) {}, false},
		{"no connect timeout", func(o *ConnectOptions) { o.ConnectTimeout = 0 }, true},
		{"negative retry interval", func(o *ConnectOptions) { o.RetryInterval = -time.Second }, true},
		{"no max wait", func(o *ConnectOptions) { o.MaxWait = 0 }, true},
		{"no ping timeout", func(o *ConnectOptions) { o.PingTimeout = 0 }, true},
		{"negative warn threshold", func(o *ConnectOptions) { o.WarnThreshold = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)
			if err := opts.validate(); (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNextWait(t *testing.T) {
	if got := nextWait(2*time.Second, 10*time.Second); got != 4*time.Second {
		t.Errorf("nextWait() = %v, want 4s", got)
	}
	if got := nextWait(8*time.Second, 10*time.Second); got != 10*time.Second {
		t.Errorf("nextWait() = %v, want cap 10s", got)
	}
}

func TestNewUnreachable(t *testing.T) {
	start := time.Now()
	client, err := New(context.Background(), validOptions(), logger.Nop())
	if err == nil {
		_ = client.Close()
		t.Fatal("New() should fail when nothing listens")
	}
	if time.Since(start) > 2*time.Second {
		t.Errorf("New() took %v, ConnectTimeout not honoured", time.Since(start))
	}
}

func TestNewInvalidOptions(t *testing.T) {
	opts := validOptions()
	opts.PingTimeout = 0
	if _, err := New(context.Background(), opts, logger.Nop()); err == nil {
		t.Error("New() should reject invalid options")
	}
}
