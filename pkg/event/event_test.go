package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_NewRequestEvent(t *testing.T) {
	t.Run("Captures URL, method and headers", func(t *testing.T) {
		req, err := http.NewRequest("POST", "https://api.example.com/v1/users?page=2", strings.NewReader("hello"))
		require.NoError(t, err)
		req.Header.Add("Accept", "application/json")
		req.Header.Add("Accept", "text/plain")

		ev := NewRequestEvent("id-1", req, false)
		require.Equal(t, "id-1", ev.ID)
		require.Equal(t, "https://api.example.com/v1/users?page=2", ev.URL)
		require.Equal(t, "POST", ev.Method)
		require.Equal(t, "application/json, text/plain", ev.Request.Headers["Accept"])
		require.Nil(t, ev.Request.Body)

		b, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.Equal(t, "hello", string(b))
	})

	t.Run("Records the request body and hands it back", func(t *testing.T) {
		req, err := http.NewRequest("POST", "https://api.example.com/echo", strings.NewReader(`{"ok":true}`))
		require.NoError(t, err)

		ev := NewRequestEvent("id-2", req, true)
		require.Equal(t, `{"ok":true}`, *ev.Request.Body)

		b, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.Equal(t, `{"ok":true}`, string(b))
	})

	t.Run("Base64 encodes binary bodies", func(t *testing.T) {
		req, err := http.NewRequest("POST", "https://api.example.com/echo", bytes.NewReader([]byte{0xff, 0x00, 0xff, 0x00}))
		require.NoError(t, err)
		ev := NewRequestEvent("id-3", req, true)
		require.Equal(t, "/wD/AA==", *ev.Request.Body)
	})

	t.Run("Rebuilds absolute URLs for server side requests", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/users?x=1", nil)
		req.Host = "app.example.com:8080"
		ev := NewRequestEvent("id-4", req, false)
		require.Equal(t, "http://app.example.com:8080/api/users?x=1", ev.URL)
	})
}

func Test_SetResponse(t *testing.T) {
	t.Run("Captures status, headers and body", func(t *testing.T) {
		ev := &RequestEvent{}
		res := &http.Response{
			StatusCode: 201,
			Header:     http.Header{"Content-Type": {"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"id":1}`)),
		}
		ev.SetResponse(res, nil, true)
		require.Equal(t, 201, ev.Status)
		require.Equal(t, "application/json", ev.Response.Headers["Content-Type"])
		require.Equal(t, `{"id":1}`, *ev.Response.Body)

		b, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		require.Equal(t, `{"id":1}`, string(b))
	})

	t.Run("Leaves nil bodies readable", func(t *testing.T) {
		ev := &RequestEvent{}
		res := &http.Response{StatusCode: 204}
		ev.SetResponse(res, nil, true)
		require.Equal(t, 204, ev.Status)
		require.Nil(t, ev.Response.Body)
		require.Equal(t, http.NoBody, res.Body)
	})

	t.Run("Transport errors leave status at zero", func(t *testing.T) {
		ev := &RequestEvent{Status: 200}
		ev.SetResponse(nil, errors.New("dial tcp: no such host"), true)
		require.Equal(t, 0, ev.Status)
		require.Equal(t, "dial tcp: no such host", *ev.Response.Body)
	})

	t.Run("Replays body read errors", func(t *testing.T) {
		ev := &RequestEvent{}
		res := &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(io.MultiReader(strings.NewReader("part"), errReader{})),
		}
		ev.SetResponse(res, nil, true)
		_, err := io.ReadAll(res.Body)
		require.Error(t, err)
	})
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("unexpected EOF") }

func Test_JSON(t *testing.T) {
	t.Run("Encodes duration as milliseconds", func(t *testing.T) {
		body := "x"
		ev := RequestEvent{
			URL:      "/api/users",
			Method:   "GET",
			Status:   200,
			Duration: 1500 * time.Millisecond,
			Request:  Payload{Headers: map[string]string{}, Body: &body},
		}
		b, err := json.Marshal(ev)
		require.NoError(t, err)
		require.Contains(t, string(b), `"duration":1500`)
		require.Contains(t, string(b), `"url":"/api/users"`)

		var back RequestEvent
		require.NoError(t, json.Unmarshal(b, &back))
		require.Equal(t, 1500*time.Millisecond, back.Duration)
		require.Equal(t, "x", *back.Request.Body)
		require.Equal(t, 200, back.Status)
	})

	t.Run("Sparse events encode back to their input", func(t *testing.T) {
		in := `{"url":"/api/users","method":"GET","status":200}`
		var ev RequestEvent
		require.NoError(t, json.Unmarshal([]byte(in), &ev))

		b, err := json.Marshal(ev)
		require.NoError(t, err)
		require.JSONEq(t, in, string(b))
	})

	t.Run("Timestamps and payloads survive a round trip", func(t *testing.T) {
		body := "ok"
		at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		ev := RequestEvent{
			URL:         "https://example.com/api",
			Method:      "POST",
			Status:      201,
			Response:    Payload{Headers: map[string]string{"Content-Type": "text/plain"}, Body: &body},
			RequestedAt: at,
			RespondedAt: at.Add(time.Second),
		}
		b, err := json.Marshal(&ev)
		require.NoError(t, err)
		require.NotContains(t, string(b), `"request"`)

		var back RequestEvent
		require.NoError(t, json.Unmarshal(b, &back))
		require.True(t, at.Equal(back.RequestedAt))
		require.Equal(t, time.Second, back.RespondedAt.Sub(back.RequestedAt))
		require.Equal(t, "text/plain", back.Response.Headers["Content-Type"])
		require.Equal(t, "ok", *back.Response.Body)
	})

	t.Run("Decodes sparse events", func(t *testing.T) {
		var ev RequestEvent
		require.NoError(t, json.Unmarshal([]byte(`{"url":"https://x.test/a.js","status":404}`), &ev))
		require.Equal(t, "https://x.test/a.js", ev.URL)
		require.Equal(t, 404, ev.Status)
		require.Zero(t, ev.Duration)
		require.Nil(t, ev.Response.Body)
	})
}
