package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddlewareIP(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{name: "remote only", remote: "10.0.0.7:51234", want: "10.0.0.7"},
		{name: "true client ip wins", remote: "10.0.0.7:1", headers: map[string]string{"True-Client-IP": "203.0.113.9", "X-Real-IP": "198.51.100.1"}, want: "203.0.113.9"},
		{name: "first forwarded hop", remote: "10.0.0.7:1", headers: map[string]string{"X-Forwarded-For": "198.51.100.4, 10.0.0.1"}, want: "198.51.100.4"},
		{name: "garbage header ignored", remote: "10.0.0.7:1", headers: map[string]string{"X-Real-IP": "not-an-ip"}, want: "10.0.0.7"},
		{name: "unparseable remote kept", remote: "pipe", want: "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			var got string
			h := middlewareIP(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) { got = r.RemoteAddr }))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			// Act
			h.ServeHTTP(httptest.NewRecorder(), req)

			// Assert
			if got != tt.want {
				t.Fatalf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}
