package httpbind

import (
	"net/http"

	"go.uber.org/zap"
)

// GuardFunc rejects a request before it is handled. Returning a StatusError
// selects the response code; any other error maps to 403.
type GuardFunc func(r *http.Request) error

// Options configures Apply and Handler.
type Options struct {
	RoutePath string
	// MaxMemory bounds the multipart form held in memory; larger parts spill
	// to temporary files.
	MaxMemory int64
	Guard     GuardFunc
	Logger    *zap.Logger
	// Standalone renders a full HTML document instead of a bare form.
	Standalone bool
	Hidden     map[string]string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:  "/",
		MaxMemory:  32 << 20,
		Logger:     zap.NewNop(),
		Standalone: true,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/"
	}
	if opts.MaxMemory <= 0 {
		opts.MaxMemory = 32 << 20
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		o.RoutePath = path
	}
}

func WithMaxMemory(n int64) OptionFn {
	return func(o *Options) {
		o.MaxMemory = n
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithStandalone(standalone bool) OptionFn {
	return func(o *Options) {
		o.Standalone = standalone
	}
}

// WithHidden adds a hidden field to every rendered page.
func WithHidden(name, value string) OptionFn {
	return func(o *Options) {
		if o.Hidden == nil {
			o.Hidden = make(map[string]string)
		}
		o.Hidden[name] = value
	}
}
