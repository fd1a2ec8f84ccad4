package utils

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote addr only", "10.0.0.5:4312", nil, false, "10.0.0.5"},
		{"headers ignored when untrusted", "10.0.0.5:4312", map[string]string{"X-Forwarded-For": "1.2.3.4"}, false, "10.0.0.5"},
		{"cloudflare wins", "127.0.0.1:1", map[string]string{"CF-Connecting-IP": "9.9.9.9", "X-Forwarded-For": "1.2.3.4"}, true, "9.9.9.9"},
		{"left-most forwarded", "127.0.0.1:1", map[string]string{"X-Forwarded-For": " 1.2.3.4 , 5.6.7.8"}, true, "1.2.3.4"},
		{"real ip", "127.0.0.1:1", map[string]string{"X-Real-IP": "8.8.4.4"}, true, "8.8.4.4"},
		{"trusted without headers", "[::1]:8080", nil, true, "::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"192.168.1.0/24", " 10.0.0.7 ", "", "not-an-ip", "fd00::/8"})
	if m.IsEmpty() {
		t.Fatal("IsEmpty() = true, want false")
	}

	tests := []struct {
		ip   string
		want bool
	}{
		{"192.168.1.77", true},
		{"192.168.2.1", false},
		{"10.0.0.7", true},
		{"10.0.0.8", false},
		{"::ffff:10.0.0.7", true},
		{"fd12::1", true},
		{"garbage", false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("NewIPMatcher(nil).IsEmpty() = false, want true")
	}
}
