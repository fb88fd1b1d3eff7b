package submission

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/North-Head-Digital/nhd-website/pkg/common"
)

func getContextValue[T any](ctx context.Context, key interface{}) (T, error) {
	value := ctx.Value(key)
	if value == nil {
		var zero T
		return zero, fmt.Errorf("value not found in context for key: %v", key)
	}
	result, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("invalid type assertion for key: %v", key)
	}
	return result, nil
}

// loggerFrom returns the submission-scoped logger, or a discarding one.
func loggerFrom(ctx context.Context) logrus.FieldLogger {
	logger, err := getContextValue[*logrus.Entry](ctx, common.LoggerKey)
	if err != nil {
		return discard
	}
	return logger
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}()
