// ABOUTME: Shared construction options for the workout and exercise services.
// ABOUTME: Services log through charmbracelet/log; the default logger discards output.
package service

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitness/internal/models"
)

// Option configures a service.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger sets the logger used for debug and warning output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// requirePositiveID rejects ids that no stored entity can have.
func requirePositiveID(entity string, id int64) error {
	if id <= 0 {
		return models.InvalidInput("%s id must be positive, got %d", entity, id)
	}
	return nil
}
