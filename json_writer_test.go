package wheel

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("field order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("date", MustParse("2025-01-02"))
		w.Append("action", ActionBuy)
		w.Append("quantity", Q(100))
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"date":"2025-01-02","action":"buy","quantity":100}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 0) // a zero value is actually added.
		w.Optional("b", "")
		w.Optional("c", Date{})
		w.Optional("d", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":0,"d":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("conditional fields", func(t *testing.T) {
		var w jsonObjectWriter
		fees := decimal.Zero
		strike := decimal.NewFromInt(115)
		w.When(!fees.IsZero(), "fees", fees)
		w.When(!strike.IsZero(), "strike", strike)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `{"strike":115}`; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("marshal error", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("ch", make(chan int))
		w.Append("a", 1)
		if _, err := w.MarshalJSON(); err == nil {
			t.Error("expected an error for an unsupported value")
		}
	})
}
