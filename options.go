package sanitizer

import (
	"fmt"
	"net/http"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/classifier"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/event"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/presets"
)

// Options configure the sanitizer Service
type Options struct {
	// OnKeep receives every event the classifier keeps, unchanged.
	// It is called synchronously from the goroutine that made the request.
	OnKeep func(ev *event.RequestEvent)

	// Classifier decides which calls are kept. When set, Preset and
	// Sanitizer are ignored.
	Classifier classifier.Classifier

	// Preset names one of the presets (strict, balanced, verbose, debug).
	// (defaults to the SANITIZER_PRESET environment variable when Sanitizer is nil)
	Preset string

	// Sanitizer configures the rule engine when neither Classifier nor Preset
	// is set.
	// (defaults to classifier defaults)
	Sanitizer *classifier.Options

	// Origin is the hostname of the application doing the recording. Calls to
	// it are kept by the own domain rule of the preset or engine built from
	// these options. It is not applied to an explicit Classifier, nor when
	// Sanitizer sets its own Origin or OwnDomains.
	// (defaults to the SANITIZER_ORIGIN environment variable)
	Origin string

	// RecordRequestBody copies request bodies into the captured event.
	RecordRequestBody bool

	// RecordResponseBody copies response bodies into the captured event.
	RecordResponseBody bool

	// The HTTPClient wrapped as Service.DefaultClient
	// (defaults to http.DefaultClient)
	HTTPClient *http.Client

	// Log Level to use for logging, debug prints every verdict
	// (defaults to the SANITIZER_LOG_LEVEL environment variable, or info)
	LogLevel string

	// LogFile sends logs to a rotating file instead of stderr
	// (defaults to the SANITIZER_LOG_FILE environment variable)
	LogFile string

	// Registerer receives the verdict metrics. (by default no metrics are kept)
	Registerer prometheus.Registerer

	// Clock times requests. (defaults to the wall clock)
	Clock clockwork.Clock
}

func (o *Options) parse() (*Options, error) {
	if o == nil {
		o = &Options{}
	} else {
		copy := *o
		o = &copy
	}

	if o.OnKeep == nil {
		return nil, fmt.Errorf("sanitizer: missing OnKeep")
	}

	if o.Origin == "" {
		o.Origin = os.Getenv("SANITIZER_ORIGIN")
	}

	if o.Classifier == nil {
		if o.Preset == "" && o.Sanitizer == nil {
			o.Preset = os.Getenv("SANITIZER_PRESET")
		}
		if o.Preset != "" && o.Sanitizer != nil {
			return nil, fmt.Errorf("sanitizer: Preset and Sanitizer can not both be set")
		}

		if o.Preset != "" {
			var origins []string
			if o.Origin != "" {
				origins = append(origins, o.Origin)
			}
			c, err := presets.ByName(o.Preset, origins...)
			if err != nil {
				return nil, err
			}
			o.Classifier = c
		} else {
			sanitizer := classifier.Options{}
			if o.Sanitizer != nil {
				sanitizer = *o.Sanitizer
			}
			if sanitizer.Origin == "" {
				sanitizer.Origin = o.Origin
			}
			o.Classifier = classifier.New(&sanitizer)
		}
	}

	if o.HTTPClient == nil {
		o.HTTPClient = http.DefaultClient
	}

	if o.LogLevel == "" {
		o.LogLevel = os.Getenv("SANITIZER_LOG_LEVEL")
	}
	if o.LogFile == "" {
		o.LogFile = os.Getenv("SANITIZER_LOG_FILE")
	}

	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}

	return o, nil
}
