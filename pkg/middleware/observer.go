// Package middleware captures what a server handler writes.
package middleware

import (
	"bytes"
	"net/http"
)

// ResponseObserver wraps a ResponseWriter and remembers the status and, when
// RecordBody is set, the bytes written through it.
type ResponseObserver struct {
	http.ResponseWriter
	RecordBody bool

	status      int
	body        bytes.Buffer
	wroteHeader bool
}

func (o *ResponseObserver) Write(p []byte) (n int, err error) {
	if !o.wroteHeader {
		o.WriteHeader(http.StatusOK)
	}
	n, err = o.ResponseWriter.Write(p)
	if o.RecordBody {
		o.body.Write(p[:n])
	}
	return
}

func (o *ResponseObserver) WriteHeader(code int) {
	o.ResponseWriter.WriteHeader(code)
	if o.wroteHeader {
		return
	}
	o.wroteHeader = true
	o.status = code
}

// Status is the first status written, or 200 if the handler wrote nothing.
func (o *ResponseObserver) Status() int {
	if o.status == 0 {
		return http.StatusOK
	}
	return o.status
}

// Body returns the recorded bytes.
func (o *ResponseObserver) Body() []byte {
	return o.body.Bytes()
}

// Flush forwards to the wrapped writer when it supports flushing.
func (o *ResponseObserver) Flush() {
	if f, ok := o.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
