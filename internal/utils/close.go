package utils

import (
	"io"

	"github.com/MrSnakeDoc/rolewithai/internal/logger"
)

// MustClose closes c for deferred cleanup. A failure is only worth a debug
// line tagged with what.
func MustClose(c io.Closer, log logger.Logger, what string) {
	if err := c.Close(); err != nil {
		log.Debug("failed to close", logger.String("what", what), logger.Error(err))
	}
}
