package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"corpbooking/shared/constant"

	"github.com/stretchr/testify/assert"
)

func TestClientKey(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:    "forwarded chain uses first hop",
			headers: map[string]string{constant.RequestHeaderForwardedFor: "10.0.0.1, 10.0.0.2", constant.RequestHeaderUserAgent: "curl"},
			want:    "limiter:10.0.0.1:curl",
		},
		{
			name:    "real ip header",
			headers: map[string]string{constant.RequestHeaderRealIP: " 10.1.1.1 "},
			want:    "limiter:10.1.1.1:unknown",
		},
		{
			name:   "peer address without port",
			remote: "192.168.1.5:53412",
			want:   "limiter:192.168.1.5:unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
			req.RemoteAddr = tt.remote

			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			assert.Equal(t, tt.want, clientKey(req))
		})
	}
}
