package httpx

import (
	"path"
	"time"

	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/gin-gonic/gin"
)

// quietPaths — служебные маршруты, которые не пишем в лог.
var quietPaths = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
}

// assetExt — статика страниц: css/js/картинки логируем только при ошибке.
var assetExt = map[string]struct{}{
	".css": {}, ".js": {}, ".png": {}, ".jpg": {}, ".svg": {}, ".ico": {}, ".webp": {},
}

// RequestLogger — строка лога на каждый запрос. request_id/trace попадают в поля
// через контекст, поэтому в сообщении их нет. 5xx пишется как ошибка.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, ok := quietPaths[route]; ok {
			return
		}
		if route == "" {
			route = c.Request.URL.Path
		}

		status := c.Writer.Status()
		if _, ok := assetExt[path.Ext(c.Request.URL.Path)]; ok && status < 400 {
			return
		}

		ctx := c.Request.Context()
		format := "http %s %s status=%d duration=%s size=%d"
		args := []any{c.Request.Method, route, status, time.Since(start), c.Writer.Size()}
		switch {
		case status >= 500:
			log.Errorf(ctx, format, args...)
		case status >= 400:
			log.Warnf(ctx, format, args...)
		default:
			log.Infof(ctx, format, args...)
		}
	}
}
