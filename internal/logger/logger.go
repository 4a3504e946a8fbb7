package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Log используется всеми компонентами сервиса. До вызова Initialize
// логирование отключено.
var Log = zap.NewNop()

// Initialize создает логгер с заданным уровнем логирования.
func Initialize(level string) error {
	logLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = logLevel
	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = logger

	return nil
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// RequestLogger возвращает middleware, логирующее метод, URI, код ответа
// и длительность обработки каждого запроса.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		Log.Info(
			"запрос обработан",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Int("status", wrapped.statusCode),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
