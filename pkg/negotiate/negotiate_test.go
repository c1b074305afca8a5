package negotiate_test

import (
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-hyperview/pkg/negotiate"
)

func TestNegotiate(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    negotiate.Kind
	}{
		{
			name: "bare request defaults to JSON",
			want: negotiate.KindJSON,
		},
		{
			name:    "htmx request means HTML",
			headers: map[string]string{"HX-Request": "true"},
			want:    negotiate.KindHTML,
		},
		{
			name:    "variant header means HTML",
			headers: map[string]string{"HV-Variant": "table"},
			want:    negotiate.KindHTML,
		},
		{
			name: "htmx wins over JSON content type",
			headers: map[string]string{
				"HX-Request":   "true",
				"Content-Type": "application/json",
			},
			want: negotiate.KindHTML,
		},
		{
			name:    "JSON body means JSON back",
			headers: map[string]string{"Content-Type": "application/json"},
			want:    negotiate.KindJSON,
		},
		{
			name: "JSON body wins over HTML accept",
			headers: map[string]string{
				"Content-Type": "application/json",
				"Accept":       "text/html",
			},
			want: negotiate.KindJSON,
		},
		{
			name:    "event stream accept",
			headers: map[string]string{"Accept": "text/event-stream"},
			want:    negotiate.KindEventStream,
		},
		{
			name:    "browser accept list means HTML",
			headers: map[string]string{"Accept": "text/html,application/xhtml+xml,application/xml;q=0.9"},
			want:    negotiate.KindHTML,
		},
		{
			name:    "accept with leading entry",
			headers: map[string]string{"Accept": "application/xml, text/html"},
			want:    negotiate.KindHTML,
		},
		{
			name:    "json accept means JSON",
			headers: map[string]string{"Accept": "application/json"},
			want:    negotiate.KindJSON,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			for name, value := range tc.headers {
				req.Header.Set(name, value)
			}
			if got := negotiate.Negotiate(req); got != tc.want {
				t.Fatalf("expected kind %v, got %v", tc.want, got)
			}
		})
	}
}

func TestVariant(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := negotiate.Variant(req); got != "" {
		t.Fatalf("expected empty variant, got %q", got)
	}

	req.Header.Set("HV-Variant", " row ")
	if got := negotiate.Variant(req); got != "row" {
		t.Fatalf("expected trimmed variant, got %q", got)
	}
}

func TestIsHTML(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if negotiate.IsHTML(req) {
		t.Fatal("expected bare request to be JSON")
	}

	req.Header.Set("Accept", "text/event-stream")
	if !negotiate.IsHTML(req) {
		t.Fatal("expected event-stream request to count as HTML")
	}
}
