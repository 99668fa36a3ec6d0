package sanitizer

import (
	"io"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/classifier"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/metrics"
)

// Service captures network calls made through wrapped clients and handlers,
// classifies each one and passes the kept events to Options.OnKeep.
//
// If Options.LogFile is set you must call [Service.Close] before your
// program exits to release it.
type Service struct {
	// DefaultClient is a wrapped version of Options.HTTPClient.
	// If you'd like to capture all requests, set
	// http.DefaultClient = s.DefaultClient.
	DefaultClient *http.Client

	options    *Options
	classifier classifier.Classifier
	clock      clockwork.Clock
	log        zerolog.Logger
	logCloser  io.Closer
	metrics    *metrics.Recorder
}
