// Package sanitizer captures outbound and inbound HTTP calls and keeps only
// the ones worth recording: failures, slow calls, first party API traffic
// and state-changing requests.
//
// You can use it globally by overriding [http.DefaultClient] with a wrapped
// version, more selectively by wrapping specific clients, or on the server
// side with [Service.Middleware]. Which calls are kept is decided by a
// [classifier.Classifier]; see the classifier, presets and scoped packages.
package sanitizer

import (
	"net/http"

	"github.com/supergoodsystems/supergood-sanitizer/internal/domainutils"
	"github.com/supergoodsystems/supergood-sanitizer/internal/logger"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/classifier"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/event"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/metrics"
)

// New creates a new sanitizer service.
// An error is returned only if the configuration is invalid.
func New(o *Options) (*Service, error) {
	o, err := o.parse()
	if err != nil {
		return nil, err
	}

	log, closer, err := logger.New(logger.Config{Level: o.LogLevel, File: o.LogFile})
	if err != nil {
		return nil, err
	}

	recorder, err := metrics.NewRecorder(o.Registerer)
	if err != nil {
		closer.Close()
		return nil, err
	}

	s := &Service{
		options:    o,
		classifier: o.Classifier,
		clock:      o.Clock,
		log:        log,
		logCloser:  closer,
		metrics:    recorder,
	}
	s.DefaultClient = s.Wrap(o.HTTPClient)
	return s, nil
}

// Wrap returns a new http client that calls the original and
// also classifies every call it makes.
func (s *Service) Wrap(client *http.Client) *http.Client {
	next := client.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	return &http.Client{
		Transport:     &roundTripper{s: s, next: next},
		CheckRedirect: client.CheckRedirect,
		Jar:           client.Jar,
		Timeout:       client.Timeout,
	}
}

// Close releases the log file, if any.
func (s *Service) Close() error {
	return s.logCloser.Close()
}

// Classify runs the configured classifier on ev, records the verdict and
// forwards kept events to OnKeep. Interception layers other than the ones in
// this package can call it directly.
func (s *Service) Classify(ev *event.RequestEvent) classifier.Verdict {
	if ev == nil {
		return classifier.Drop(classifier.RuleDefault)
	}
	v := s.classifier.Classify(ev)
	s.metrics.Observe(v, ev.Duration.Seconds())

	if e := s.log.Debug(); e.Enabled() {
		e.Str("id", ev.ID).
			Str("method", ev.Method).
			Str("url", ev.URL).
			Str("domain", domainutils.Domain(ev.URL)).
			Int("status", ev.Status).
			Dur("duration", ev.Duration).
			Bool("kept", v.Kept()).
			Stringer("rule", v.Rule()).
			Msg("classified request")
	}

	if v.Kept() {
		s.options.OnKeep(v.Event())
	}
	return v
}
