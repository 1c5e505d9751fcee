package httpx

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/gin-gonic/gin"
)

// quietRoutes — служебные маршруты, которые опрашиваются слишком часто для журнала.
var quietRoutes = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
}

// RequestLogger пишет одну строку на запрос после обработки.
// request_id, principal и trace_id добавляет сам логгер из ctx,
// поэтому строка содержит только параметры HTTP.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, ok := quietRoutes[route]; ok {
			return
		}
		if route == "" {
			route = c.Request.URL.Path
		}

		status := c.Writer.Status()
		logf := log.Infof
		switch {
		case status >= http.StatusInternalServerError:
			logf = log.Errorf
		case status == http.StatusConflict || status == http.StatusTooManyRequests:
			logf = log.Warnf
		}

		// c.Request к этому моменту может нести principal, выставленный проверкой сессии.
		logf(c.Request.Context(), "http %s %s status=%d ip=%s duration=%s size=%d errors=%d",
			c.Request.Method,
			route,
			status,
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
			len(c.Errors),
		)
	}
}
