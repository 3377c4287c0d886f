package settings

import "context"

type settingsCtxKeyType string

const settingsCtxKey settingsCtxKeyType = "settings"

func WithConfig(ctx context.Context, cfg *Settings) context.Context {
	return context.WithValue(ctx, settingsCtxKey, cfg)
}

func FromContext(ctx context.Context) *Settings {
	cfg, ok := ctx.Value(settingsCtxKey).(*Settings)
	if !ok {
		panic("settings not present in context")
	}
	return cfg
}
