package middleware

import (
	"time"

	"github.com/annel0/combo-targeting/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDKey - ключ gin.Context, под которым хранится trace-ID запроса
const TraceIDKey = "trace_id"

// RequestLogger снабжает каждый запрос инспектора trace-ID и пишет короткую строку в лог компонента
type RequestLogger struct {
	logger *logging.Logger
}

// NewRequestLogger создаёт middleware; при logger == nil пишет в логгер инспектора
func NewRequestLogger(logger *logging.Logger) *RequestLogger {
	if logger == nil {
		logger = logging.GetInspectorLogger()
	}
	return &RequestLogger{logger: logger}
}

// Handler возвращает gin.HandlerFunc для router.Use()
func (rl *RequestLogger) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := traceIDFrom(c)
		c.Set(TraceIDKey, traceID)
		c.Header("X-Trace-Id", traceID)

		start := time.Now()
		path := routePath(c)
		rl.logger.Debug("▶ %s %s ip=%s trace=%s", c.Request.Method, path, c.ClientIP(), traceID)

		c.Next()

		rl.logger.Info("◀ %s %s %d %s trace=%s", c.Request.Method, path, c.Writer.Status(), time.Since(start), traceID)
	}
}

// traceIDFrom берёт trace-ID из активного span OpenTelemetry или генерирует UUID
func traceIDFrom(c *gin.Context) string {
	span := trace.SpanFromContext(c.Request.Context())
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return uuid.NewString()
}

// routePath возвращает шаблон маршрута, а для не найденных маршрутов - сырой путь
func routePath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}
