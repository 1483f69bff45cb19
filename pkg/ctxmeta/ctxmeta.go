// Пакет ctxmeta — метаданные вызова, которые прокидываются через context.Context:
// request_id HTTP-запроса, источник действия (http|cli), trace/span при сборке с `otel`.
// HTTP-слой, CLI и логгер зависят от этого пакета, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
	KeyOrigin    ctxKey = "origin"
)

// Источники действий пользователя.
const (
	OriginHTTP = "http"
	OriginCLI  = "cli"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyRequestID)
}

// WithOrigin помечает, откуда пришло действие (страница или CLI).
func WithOrigin(ctx context.Context, origin string) context.Context {
	return withString(ctx, KeyOrigin, origin)
}

// OriginFromContext достаёт источник действия.
func OriginFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyOrigin)
}

// LogFields — пары ключ/значение для структурного логгера; только заполненные поля.
func LogFields(ctx context.Context) []any {
	var fields []any
	if v, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, string(KeyRequestID), v)
	}
	if v, ok := OriginFromContext(ctx); ok {
		fields = append(fields, string(KeyOrigin), v)
	}
	if tr, sp, ok := SpanIDs(ctx); ok {
		fields = append(fields, "trace_id", tr, "span_id", sp)
	}
	return fields
}

func withString(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
