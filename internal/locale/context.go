package locale

import "context"

type contextKey struct{}

// WithLanguage returns a context carrying the request's language.
func WithLanguage(ctx context.Context, lang Language) context.Context {
	return context.WithValue(ctx, contextKey{}, lang)
}

// FromContext returns the language carried by the context, or the default.
func FromContext(ctx context.Context) Language {
	if lang, ok := ctx.Value(contextKey{}).(Language); ok {
		return lang
	}
	return DefaultLanguage
}
