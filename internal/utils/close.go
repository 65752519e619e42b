package utils

import (
	"io"

	"github.com/abodsh/edufiles/internal/logger"
)

// Close closes c and logs the error instead of dropping it.
func Close(c io.Closer, log logger.Logger, what string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil && log != nil {
		log.Warn("close failed", logger.String("what", what), logger.Error(err))
	}
}
