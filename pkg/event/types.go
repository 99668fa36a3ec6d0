package event

import (
	"encoding/json"
	"time"
)

// Payload is one side of a captured call.
type Payload struct {
	Headers map[string]string `json:"headers,omitempty"`
	Body    *string           `json:"body,omitempty"`
}

// RequestEvent is the metadata of one captured network call. Classifiers
// treat it as read-only.
type RequestEvent struct {
	ID       string  `json:"id,omitempty"`
	URL      string  `json:"url"`
	Method   string  `json:"method"`
	Status   int     `json:"status"`
	Request  Payload `json:"request"`
	Response Payload `json:"response"`

	// Duration is supplied by the interception layer. Zero means the call
	// was not timed.
	Duration time.Duration `json:"-"`

	// Zero times are not encoded.
	RequestedAt time.Time `json:"requestedAt"`
	RespondedAt time.Time `json:"respondedAt"`
}

type wireEvent RequestEvent

// wireEventJSON shadows the fields encoding/json can not leave out when they
// are zero.
type wireEventJSON struct {
	*wireEvent
	Request     *Payload   `json:"request,omitempty"`
	Response    *Payload   `json:"response,omitempty"`
	DurationMs  float64    `json:"duration,omitempty"`
	RequestedAt *time.Time `json:"requestedAt,omitempty"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`
}

// MarshalJSON encodes Duration as fractional milliseconds under "duration".
// Empty payloads and zero timestamps are left out.
func (e RequestEvent) MarshalJSON() ([]byte, error) {
	w := wireEvent(e)
	return json.Marshal(wireEventJSON{
		wireEvent:   &w,
		Request:     payloadOrNil(e.Request),
		Response:    payloadOrNil(e.Response),
		DurationMs:  float64(e.Duration) / float64(time.Millisecond),
		RequestedAt: timeOrNil(e.RequestedAt),
		RespondedAt: timeOrNil(e.RespondedAt),
	})
}

func (e *RequestEvent) UnmarshalJSON(b []byte) error {
	w := wireEventJSON{wireEvent: (*wireEvent)(e)}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Request != nil {
		e.Request = *w.Request
	}
	if w.Response != nil {
		e.Response = *w.Response
	}
	if w.RequestedAt != nil {
		e.RequestedAt = *w.RequestedAt
	}
	if w.RespondedAt != nil {
		e.RespondedAt = *w.RespondedAt
	}
	e.Duration = time.Duration(w.DurationMs * float64(time.Millisecond))
	return nil
}

func payloadOrNil(p Payload) *Payload {
	if len(p.Headers) == 0 && p.Body == nil {
		return nil
	}
	return &p
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
