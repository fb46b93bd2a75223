package instrument

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// Redacted replaces the value of every masked field.
const Redacted = "***"

// Masker redacts values stored under configured keys. Keys match case
// insensitively at any depth. A nil Masker masks nothing.
type Masker struct {
	keys map[string]struct{}
}

func NewMasker(fields []string) *Masker {
	keys := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			keys[f] = struct{}{}
		}
	}
	return &Masker{keys: keys}
}

func (m *Masker) enabled() bool {
	return m != nil && len(m.keys) > 0
}

// Sensitive reports whether values under key are redacted.
func (m *Masker) Sensitive(key string) bool {
	if !m.enabled() {
		return false
	}
	_, ok := m.keys[strings.ToLower(key)]
	return ok
}

// Value returns v with sensitive entries of nested maps replaced.
func (m *Masker) Value(v any) any {
	if !m.enabled() {
		return v
	}

	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if m.Sensitive(k) {
				out[k] = Redacted
				continue
			}
			out[k] = m.Value(inner)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = inner
		}
		return m.Value(out)
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = m.Value(inner)
		}
		return out
	default:
		return v
	}
}

// JSON decodes raw and masks the result. ok is false when raw is not JSON.
func (m *Masker) JSON(raw []byte) (v any, ok bool) {
	if len(raw) == 0 {
		return nil, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return m.Value(v), true
}

// Header returns a copy of h with sensitive headers redacted.
func (m *Masker) Header(h http.Header) http.Header {
	if !m.enabled() {
		return h
	}

	out := h.Clone()
	for k := range out {
		if m.Sensitive(k) {
			out.Set(k, Redacted)
		}
	}
	return out
}

// Attr masks a log attribute. String and byte values holding a JSON object
// or array are masked inside and re-encoded.
func (m *Masker) Attr(a slog.Attr) slog.Attr {
	if !m.enabled() {
		return a
	}
	if m.Sensitive(a.Key) {
		return slog.String(a.Key, Redacted)
	}

	switch a.Value.Kind() {
	case slog.KindGroup:
		group := a.Value.Group()
		masked := make([]slog.Attr, len(group))
		for i, ga := range group {
			masked[i] = m.Attr(ga)
		}
		a.Value = slog.GroupValue(masked...)
	case slog.KindString:
		if s, ok := m.jsonText(a.Value.String()); ok {
			a.Value = slog.StringValue(s)
		}
	case slog.KindAny:
		switch val := a.Value.Any().(type) {
		case map[string]any, map[string]string, []any:
			a.Value = slog.AnyValue(m.Value(val))
		case []byte:
			if s, ok := m.jsonText(string(val)); ok {
				a.Value = slog.StringValue(s)
			}
		}
	}

	return a
}

func (m *Masker) jsonText(s string) (string, bool) {
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return "", false
	}
	v, ok := m.JSON([]byte(s))
	if !ok {
		return "", false
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(out), true
}
