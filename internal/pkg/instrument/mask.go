package instrument

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/samber/lo"
)

const masked = "***"

// Masker knows which keys hold secrets. Keys compare case-insensitively.
type Masker map[string]struct{}

// NewMasker ignores blank entries.
func NewMasker(fields []string) Masker {
	keys := lo.Compact(lo.Map(fields, func(f string, _ int) string {
		return strings.ToLower(strings.TrimSpace(f))
	}))

	return lo.SliceToMap(keys, func(k string) (string, struct{}) { return k, struct{}{} })
}

// Has reports whether values under key k are hidden.
func (m Masker) Has(k string) bool {
	_, ok := m[strings.ToLower(k)]
	return ok
}

// maskHandler replaces the value of sensitive keys with "***", including keys
// nested in groups, maps and JSON encoded strings such as request bodies.
type maskHandler struct {
	next slog.Handler
	keys Masker
}

func (h *maskHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

func (h *maskHandler) Handle(ctx context.Context, r slog.Record) error {
	if len(h.keys) == 0 {
		return h.next.Handle(ctx, r)
	}

	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.keys.Attr(a))
		return true
	})

	return h.next.Handle(ctx, out)
}

func (h *maskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &maskHandler{next: h.next.WithAttrs(lo.Map(attrs, func(a slog.Attr, _ int) slog.Attr {
		return h.keys.Attr(a)
	})), keys: h.keys}
}

func (h *maskHandler) WithGroup(name string) slog.Handler {
	return &maskHandler{next: h.next.WithGroup(name), keys: h.keys}
}

// Attr masks a single log attribute.
func (m Masker) Attr(a slog.Attr) slog.Attr {
	if m.Has(a.Key) {
		return slog.String(a.Key, masked)
	}

	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		group := lo.Map(v.Group(), func(ga slog.Attr, _ int) slog.Attr { return m.Attr(ga) })
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(group...)}
	case slog.KindString:
		if s, ok := m.JSON([]byte(v.String())); ok {
			return slog.String(a.Key, s)
		}
	case slog.KindAny:
		switch x := v.Any().(type) {
		case map[string]any:
			return slog.Any(a.Key, m.Value(x))
		case map[string]string:
			return slog.Any(a.Key, m.Value(lo.MapValues(x, func(s string, _ string) any { return s })))
		case []byte:
			if s, ok := m.JSON(x); ok {
				return slog.String(a.Key, s)
			}
		}
	}

	return a
}

// JSON masks a JSON object or array. It returns false for anything else.
func (m Masker) JSON(b []byte) (string, bool) {
	if len(b) == 0 || (b[0] != '{' && b[0] != '[') {
		return "", false
	}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return "", false
	}

	out, err := json.Marshal(m.Value(v))
	if err != nil {
		return "", false
	}

	return string(out), true
}

// Value masks decoded JSON values: maps, slices and scalars.
func (m Masker) Value(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			if m.Has(k) {
				out[k] = masked
				continue
			}
			out[k] = m.Value(val)
		}
		return out
	case []any:
		return lo.Map(x, func(val any, _ int) any { return m.Value(val) })
	default:
		return v
	}
}
