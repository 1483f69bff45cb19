package httpx

import (
	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID — заголовок корреляции запроса.
const HeaderRequestID = "X-Request-ID"

// RequestMeta — кладёт в контекст запроса request_id (из заголовка или новый UUID)
// и источник действия origin; request_id возвращается в ответе.
func RequestMeta(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(HeaderRequestID, rid)

		ctx := ctxmeta.WithOrigin(ctxmeta.WithRequestID(c.Request.Context(), rid), origin)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
