package instrument

import (
	"net/http"
	"reflect"
	"testing"
)

func TestMasker(t *testing.T) {
	m := NewMasker([]string{"code", "Set-Cookie", " "})

	t.Run("nested json", func(t *testing.T) {
		got, ok := m.JSON([]byte(`{"email":"ada@example.com","data":[{"CODE":"123456"}]}`))
		if !ok {
			t.Fatal("JSON() not ok")
		}

		want := map[string]any{
			"email": "ada@example.com",
			"data":  []any{map[string]any{"CODE": Redacted}},
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("JSON() = %#v, want %#v", got, want)
		}
	})

	t.Run("not json", func(t *testing.T) {
		if _, ok := m.JSON([]byte("plain")); ok {
			t.Fatal("plain text reported as json")
		}
	})

	t.Run("headers are copied", func(t *testing.T) {
		h := http.Header{}
		h.Set("Set-Cookie", "budget_session=abc")
		h.Set("Content-Type", "application/json")

		got := m.Header(h)

		if got.Get("Set-Cookie") != Redacted || got.Get("Content-Type") != "application/json" {
			t.Fatalf("Header() = %v", got)
		}
		if h.Get("Set-Cookie") != "budget_session=abc" {
			t.Fatal("original header modified")
		}
	})

	t.Run("nil masker is a passthrough", func(t *testing.T) {
		var none *Masker
		in := map[string]any{"code": "1"}

		if got := none.Value(in); !reflect.DeepEqual(got, in) {
			t.Fatalf("Value() = %v", got)
		}
		if none.Sensitive("code") {
			t.Fatal("nil masker reported a sensitive key")
		}
	})
}
