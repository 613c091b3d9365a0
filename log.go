package inputhook

import (
	"github.com/jetkvm/inputhook/internal/logging"
	"github.com/jetkvm/inputhook/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

var (
	defaultLogger  = logging.Subsystem("inputhook")
	listenLogger   = logging.Subsystem("listen")
	grabLogger     = logging.Subsystem("grab")
	simulateLogger = logging.Subsystem("simulate")
	displayLogger  = logging.Subsystem("display")
	keyboardLogger = logging.Subsystem("keyboard")
)

// SetLogger routes all package logging through l. Each component logs with
// a "subsystem" field.
func SetLogger(l zerolog.Logger) {
	logging.SetRoot(l)
}

// Collectors returns the package's Prometheus collectors. They are not
// registered anywhere; pass them to your registry.
func Collectors() []prometheus.Collector {
	return metrics.Collectors()
}
