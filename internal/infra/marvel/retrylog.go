package marvel

import (
	"fmt"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// retryLogger routes retryablehttp logs to zerolog.
type retryLogger struct {
	logger zerolog.Logger
}

var _ retryablehttp.LeveledLogger = retryLogger{}

func newRetryLogger(base zerolog.Logger) retryLogger {
	return retryLogger{logger: base.With().Str("component", "marvel-http").Logger()}
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Fields(fields(keysAndValues)).Msg(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info().Fields(fields(keysAndValues)).Msg(msg)
}

// Debug logs at trace level. Requests are logged at debug by the client.
func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Trace().Fields(fields(keysAndValues)).Msg(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Fields(fields(keysAndValues)).Msg(msg)
}

// fields flattens key/value pairs. Values such as requests are rendered with
// their String form.
func fields(keysAndValues []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		switch v := keysAndValues[i+1].(type) {
		case string, int, int64, bool, float64:
			out[key] = v
		case error:
			out[key] = v.Error()
		default:
			out[key] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
