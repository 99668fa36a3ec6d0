package sanitizer

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/event"
)

type roundTripper struct {
	s    *Service
	next http.RoundTripper
}

func (rt *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ev := event.NewRequestEvent(uuid.New().String(), req, rt.s.options.RecordRequestBody)

	start := rt.s.clock.Now()
	resp, err := rt.next.RoundTrip(req)
	end := rt.s.clock.Now()

	ev.RequestedAt = start
	ev.RespondedAt = end
	ev.Duration = end.Sub(start)
	ev.SetResponse(resp, err, rt.s.options.RecordResponseBody)

	rt.s.Classify(ev)
	return resp, err
}
