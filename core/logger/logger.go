package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Option configures a logger built with New.
type Option func(*config)

type contextExtractor func(ctx context.Context) (slog.Attr, bool)

type config struct {
	level       slog.Level
	json        bool
	out         io.Writer
	attrs       []slog.Attr
	handlerOpts *slog.HandlerOptions
	extractors  []contextExtractor
}

// WithLevel sets the minimum level the logger emits.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithJSONFormatter selects JSON output instead of the default text
// formatter.
func WithJSONFormatter() Option {
	return func(c *config) { c.json = true }
}

// WithOutput sets the destination writer. Without it New writes to
// io.Discard; the WithDevelopment/WithProduction/WithStaging presets set
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.out = w
		}
	}
}

// WithAttr attaches attributes to every record the logger emits.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// WithHandlerOptions overrides the slog.HandlerOptions passed to the
// underlying handler, for callers that need AddSource or a custom
// ReplaceAttr.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) {
		if opts != nil {
			c.handlerOpts = opts
		}
	}
}

// WithContextExtractors registers functions that pull attributes out of a
// context.Context; every InfoContext/ErrorContext/... call runs them and
// injects whatever they find.
func WithContextExtractors(extractors ...contextExtractor) Option {
	return func(c *config) { c.extractors = append(c.extractors, extractors...) }
}

// WithDevelopment is a preset for local development: text format, debug
// level, stdout, tagged with service.
func WithDevelopment(service string) Option {
	return func(c *config) {
		c.level = slog.LevelDebug
		c.json = false
		c.out = os.Stdout
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", "development"))
	}
}

// WithProduction is a preset for production: JSON format, info level,
// stdout, tagged with service.
func WithProduction(service string) Option {
	return func(c *config) {
		c.level = slog.LevelInfo
		c.json = true
		c.out = os.Stdout
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", "production"))
	}
}

// WithStaging is a preset for staging: JSON format, info level, stdout,
// tagged with service.
func WithStaging(service string) Option {
	return func(c *config) {
		c.level = slog.LevelInfo
		c.json = true
		c.out = os.Stdout
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", "staging"))
	}
}

// New builds a *slog.Logger from the given options. With no options it
// produces a discarding logger, matching the no-op default every
// constructor in this module falls back to.
func New(opts ...Option) *slog.Logger {
	c := &config{
		level: slog.LevelInfo,
		out:   io.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}

	handlerOpts := c.handlerOpts
	if handlerOpts == nil {
		handlerOpts = &slog.HandlerOptions{Level: c.level}
	}

	var handler slog.Handler
	if c.json {
		handler = slog.NewJSONHandler(c.out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(c.out, handlerOpts)
	}

	if len(c.extractors) > 0 {
		handler = &contextHandler{Handler: handler, extractors: c.extractors}
	}

	l := slog.New(handler)
	if len(c.attrs) > 0 {
		args := make([]any, len(c.attrs))
		for i, a := range c.attrs {
			args[i] = a
		}
		l = l.With(args...)
	}
	return l
}

// SetAsDefault installs l as the result of slog.Default().
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// contextHandler decorates a slog.Handler, running every registered
// extractor against the record's context and injecting whatever
// attributes they find.
type contextHandler struct {
	slog.Handler
	extractors []contextExtractor
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, extract := range h.extractors {
		if attr, ok := extract(ctx); ok {
			r.AddAttrs(attr)
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
