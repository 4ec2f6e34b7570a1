package utils

import (
	"io"

	"github.com/MrSnakeDoc/stashlink/internal/logger"
)

// Close closes c and ignores any error.
// Use for best-effort cleanup in defer where error handling is not critical.
func Close(c io.Closer) {
	_ = c.Close()
}

// MustClose closes c and logs the outcome under the given component name.
// It reports whether the close succeeded.
func MustClose(c io.Closer, log logger.Logger, component string) bool {
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("component", component), logger.Error(err))
		return false
	}
	log.Infof("✅ %s closed cleanly", component)
	return true
}
