package request

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	goerrors "github.com/kbukum/gqlkit/errors"
	"github.com/kbukum/gqlkit/filter"
)

func strPtr(s string) *string { return &s }

func TestDescriptor_Query(t *testing.T) {
	t.Run("missing query fails", func(t *testing.T) {
		d := NewBuilder().WithRetries(3).Build()

		_, err := d.Query()
		if err == nil {
			t.Fatal("expected error for missing query")
		}
		if !goerrors.HasCode(err, goerrors.ErrCodeMissingQuery) {
			t.Errorf("expected MISSING_QUERY, got %v", err)
		}
		if !strings.Contains(err.Error(), `"retries":3`) {
			t.Errorf("expected diagnostic to serialize descriptor state, got %q", err.Error())
		}
		if d.HasQuery() {
			t.Error("HasQuery should be false")
		}
	})

	t.Run("query read back exactly", func(t *testing.T) {
		d := NewBuilder().WithQueryString("Q").Build()
		q, err := d.Query()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q != "Q" {
			t.Errorf("expected 'Q', got %q", q)
		}
	})

	t.Run("nil query clears a previous one", func(t *testing.T) {
		d := NewBuilder().WithQueryString("Q").WithQuery(nil).Build()
		if _, err := d.Query(); err == nil {
			t.Error("expected error after clearing the query")
		}
	})
}

func TestDescriptor_InclusiveFilters(t *testing.T) {
	t.Run("empty reads back as nil", func(t *testing.T) {
		for _, d := range []*Descriptor{
			NewBuilder().Build(),
			NewBuilder().WithInclusiveFilters().Build(),
			NewBuilder().WithInclusiveFilters([]filter.Filter{}...).Build(),
		} {
			if got := d.InclusiveFilters(); got != nil {
				t.Errorf("expected nil, got %v", got)
			}
		}
	})

	t.Run("non-empty reads back in order", func(t *testing.T) {
		a, b := filter.Named("logging"), filter.Named("observability:*")
		d := NewBuilder().WithInclusiveFilters(a, b).Build()

		want := []filter.Filter{a, b}
		if got := d.InclusiveFilters(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

func TestDescriptor_ExclusiveFilters(t *testing.T) {
	t.Run("empty stays empty, not nil", func(t *testing.T) {
		d := NewBuilder().Build()
		got := d.ExclusiveFilters()
		if got == nil {
			t.Fatal("expected empty non-nil sequence")
		}
		if len(got) != 0 {
			t.Errorf("expected empty, got %v", got)
		}
	})

	t.Run("stored sequence returned verbatim", func(t *testing.T) {
		a, b := filter.Named("a"), filter.Named("b")
		d := NewBuilder().WithExclusiveFilters(a, b).Build()
		if got := d.ExclusiveFilters(); !reflect.DeepEqual(got, []filter.Filter{a, b}) {
			t.Errorf("expected [a b], got %v", got)
		}
	})
}

func TestDescriptor_Defaults(t *testing.T) {
	d := NewBuilder().Build()
	if d.Description() != "" {
		t.Errorf("expected empty description, got %q", d.Description())
	}
	if d.Retries() != 0 {
		t.Errorf("expected 0 retries, got %d", d.Retries())
	}
	if d.Variables() != nil {
		t.Errorf("expected nil variables, got %v", d.Variables())
	}
	if d.ID() == "" {
		t.Error("expected an ID to be assigned")
	}
}

func TestDescriptor_Validate(t *testing.T) {
	tests := []struct {
		name string
		b    *Builder
		code goerrors.ErrorCode
	}{
		{"valid", NewBuilder().WithQueryString("{ a }").WithRetries(1), ""},
		{"missing query", NewBuilder().WithRetries(1), goerrors.ErrCodeMissingQuery},
		{"negative retries", NewBuilder().WithQueryString("{ a }").WithRetries(-1), goerrors.ErrCodeInvalidInput},
		{"bad variable name", NewBuilder().WithQueryString("{ a }").WithVariables(map[string]any{"country-code": "DE"}), goerrors.ErrCodeInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.b.Build().Validate()
			if tc.code == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !goerrors.HasCode(err, tc.code) {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestDescriptor_Immutable(t *testing.T) {
	vars := map[string]any{"code": "DE"}
	b := NewBuilder().WithQueryString("Q1").WithVariables(vars)
	d := b.Build()

	vars["code"] = "FR"
	b.WithQueryString("Q2").WithRetries(9)
	d.Variables()["code"] = "IT"

	if q, _ := d.Query(); q != "Q1" {
		t.Errorf("builder mutation leaked into descriptor: %q", q)
	}
	if d.Retries() != 0 {
		t.Errorf("builder mutation leaked into descriptor retries: %d", d.Retries())
	}
	if d.Variables()["code"] != "DE" {
		t.Errorf("variables should be isolated, got %v", d.Variables()["code"])
	}
}

func TestDescriptor_MarshalJSON(t *testing.T) {
	d := NewBuilder().
		WithQueryString("{ a }").
		WithInclusiveFilters(filter.Named("logging")).
		WithDescription(strPtr("fetch a")).
		WithRetries(2).
		Build()

	var state map[string]any
	if err := json.Unmarshal([]byte(d.String()), &state); err != nil {
		t.Fatalf("String() is not JSON: %v", err)
	}
	if state["query"] != "{ a }" {
		t.Errorf("expected query in state, got %v", state["query"])
	}
	if state["description"] != "fetch a" {
		t.Errorf("expected description in state, got %v", state["description"])
	}
	incl, _ := state["inclusiveFilters"].([]any)
	if len(incl) != 1 || incl[0] != "named(logging)" {
		t.Errorf("expected described filters, got %v", state["inclusiveFilters"])
	}
}

func TestDescriptor_StringFallsBackOnUnencodableVariables(t *testing.T) {
	d := NewBuilder().WithVariables(map[string]any{"ch": make(chan int)}).Build()
	if s := d.String(); !strings.HasPrefix(s, "Descriptor{") {
		t.Errorf("expected Go rendering fallback, got %q", s)
	}
}
