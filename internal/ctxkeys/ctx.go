package ctxkeys

import (
	"context"

	"github.com/templui/goalnote/internal/config"
	"github.com/templui/goalnote/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	OwnerKey  contextKey = "owner"
	ConfigKey contextKey = "config"
)

// Owner returns the authenticated owner. ok is false on routes that did not
// pass through the auth middleware.
func Owner(ctx context.Context) (model.OwnerID, bool) {
	owner, ok := ctx.Value(OwnerKey).(model.OwnerID)
	return owner, ok
}

func WithOwner(ctx context.Context, owner model.OwnerID) context.Context {
	return context.WithValue(ctx, OwnerKey, owner)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}
