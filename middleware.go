package sanitizer

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/event"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/middleware"
)

// Middleware classifies every request served by next.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ev := event.NewRequestEvent(uuid.New().String(), r, s.options.RecordRequestBody)
		observer := &middleware.ResponseObserver{ResponseWriter: w, RecordBody: s.options.RecordResponseBody}

		start := s.clock.Now()
		next.ServeHTTP(observer, r)
		end := s.clock.Now()

		ev.RequestedAt = start
		ev.RespondedAt = end
		ev.Duration = end.Sub(start)
		ev.SetObservedResponse(observer.Status(), w.Header(), observer.Body(), s.options.RecordResponseBody)

		s.Classify(ev)
	})
}
