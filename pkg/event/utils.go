package event

import (
	"bytes"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

func headersToMap(h http.Header) map[string]string {
	ret := map[string]string{}
	for k, vs := range h {
		ret[k] = strings.Join(vs, ", ")
	}
	return ret
}

type readCloser struct {
	c io.ReadCloser
	r *bytes.Reader
	e error
}

func (rc *readCloser) Read(b []byte) (int, error) {
	if rc.e != nil {
		return 0, rc.e
	}
	return rc.r.Read(b)
}

func (rc *readCloser) Close() error {
	return rc.c.Close()
}

// duplicateBody drains r and returns its contents along with a replacement
// reader. A read error is replayed to whoever consumes the replacement.
func duplicateBody(r io.ReadCloser) (*string, io.ReadCloser) {
	if r == nil {
		return nil, nil
	}

	b, err := io.ReadAll(r)
	rc := &readCloser{c: r, r: bytes.NewReader(b), e: err}
	return bodyString(b), rc
}

// binary bodies are base64 encoded so events stay valid JSON
func bodyString(b []byte) *string {
	var s string
	if utf8.Valid(b) {
		s = string(b)
	} else {
		s = base64.StdEncoding.EncodeToString(b)
	}
	return &s
}
