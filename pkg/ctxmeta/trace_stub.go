//go:build !otel || gopls

package ctxmeta

import "context"

// SpanIDs — без тега `otel` спанов в логах нет.
func SpanIDs(context.Context) (traceID, spanID string, ok bool) { return "", "", false }
