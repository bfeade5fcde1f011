package api

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const fallbackMessage = "request failed"

// Error describes a non-success response from the storefront API. Message is
// extracted from the payload; Body keeps the raw payload for callers that want
// to inspect it.
type Error struct {
	Message    string
	StatusCode int
	Body       []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// extractMessage turns an error payload into a readable message. The
// precedence is load-bearing for the rendering layer: string payload verbatim,
// then a string "detail" field, then the joined "msg" fields of a "detail"
// list (the usual validation-error shape), then a string "message" field,
// then a generic fallback.
func extractMessage(body []byte, isJSON bool) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return fallbackMessage
	}
	if !isJSON {
		return trimmed
	}
	if !gjson.ValidBytes(body) {
		return fallbackMessage
	}
	root := gjson.ParseBytes(body)
	if root.Type == gjson.String {
		return root.String()
	}
	if detail := root.Get("detail"); detail.Exists() {
		if detail.Type == gjson.String {
			return detail.String()
		}
		if detail.IsArray() {
			parts := make([]string, 0, len(detail.Array()))
			for _, el := range detail.Array() {
				if msg := el.Get("msg"); msg.Type == gjson.String {
					parts = append(parts, msg.String())
				} else {
					parts = append(parts, el.Raw)
				}
			}
			return strings.Join(parts, ", ")
		}
	}
	if msg := root.Get("message"); msg.Type == gjson.String {
		return msg.String()
	}
	return fallbackMessage
}
