package event

import (
	"net/http"
)

// NewRequestEvent captures the request half of a call. The request body is
// only read when recordBody is set, and is always handed back to r intact.
func NewRequestEvent(id string, r *http.Request, recordBody bool) *RequestEvent {
	var body *string
	if recordBody {
		body, r.Body = duplicateBody(r.Body)
	}

	/*
		Note: server side requests, and requests reassembled with
		http.ReadRequest, only carry the RequestURI. Rebuild the absolute URL
		from the Host header so hostname based rules can see it.
	*/
	url := r.URL.String()
	if r.URL.Host == "" && r.Host != "" {
		u := *r.URL
		u.Host = r.Host
		u.Scheme = "http"
		if r.TLS != nil {
			u.Scheme = "https"
		}
		url = u.String()
	}

	return &RequestEvent{
		ID:     id,
		URL:    url,
		Method: r.Method,
		Request: Payload{
			Headers: headersToMap(r.Header),
			Body:    body,
		},
	}
}

// SetResponse records the outcome of a call on e. A transport error leaves
// Status at 0 and stores the error text as the response body.
func (e *RequestEvent) SetResponse(res *http.Response, err error, recordBody bool) {
	if err != nil {
		msg := err.Error()
		e.Status = 0
		e.Response = Payload{Headers: map[string]string{}, Body: &msg}
		return
	}

	var body *string
	// a nil body is legal on responses built by hand
	if res.Body == nil {
		res.Body = http.NoBody
	} else if recordBody {
		body, res.Body = duplicateBody(res.Body)
	}

	e.Status = res.StatusCode
	e.Response = Payload{
		Headers: headersToMap(res.Header),
		Body:    body,
	}
}

// SetObservedResponse records a response captured by a server side writer.
func (e *RequestEvent) SetObservedResponse(status int, headers http.Header, body []byte, recordBody bool) {
	e.Status = status
	e.Response = Payload{Headers: headersToMap(headers)}
	if recordBody {
		e.Response.Body = bodyString(body)
	}
}
