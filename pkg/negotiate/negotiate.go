// Package negotiate decides whether a request expects an HTML fragment or a
// JSON payload, using header heuristics tuned for hypermedia clients. The
// rules, in order:
//
//  1. An HX-Request header (an htmx request) means HTML.
//  2. An HV-Variant header means HTML and names the template variant.
//  3. A JSON request body (Content-Type application/json or
//     application/jsonl) means JSON back.
//  4. An Accept header of text/event-stream means an HTML event stream; an
//     Accept header listing text/html means HTML.
//  5. Anything else means JSON.
package negotiate

import (
	"net/http"
	"strings"
)

// Header names the heuristic inspects. VariantHeader doubles as the variant
// selector for template lookup.
const (
	HTMXHeader    = "HX-Request"
	VariantHeader = "HV-Variant"
)

// Kind is the negotiated response shape.
type Kind int

const (
	KindJSON Kind = iota
	KindHTML
	KindEventStream
)

// Negotiate applies the heuristic and returns the response kind.
func Negotiate(r *http.Request) Kind {
	if r == nil {
		return KindJSON
	}

	if r.Header.Get(HTMXHeader) != "" || r.Header.Get(VariantHeader) != "" {
		return KindHTML
	}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") || strings.HasPrefix(contentType, "application/jsonl") {
		return KindJSON
	}

	accept := r.Header.Get("Accept")
	if accept == "text/event-stream" {
		return KindEventStream
	}
	for _, accepted := range strings.Split(accept, ",") {
		if strings.HasPrefix(strings.TrimSpace(accepted), "text/html") {
			return KindHTML
		}
	}

	return KindJSON
}

// IsHTML reports whether the request expects an HTML response, including
// event streams.
func IsHTML(r *http.Request) bool {
	return Negotiate(r) != KindJSON
}

// Variant returns the template variant requested through the VariantHeader,
// or the empty string.
func Variant(r *http.Request) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.Header.Get(VariantHeader))
}
