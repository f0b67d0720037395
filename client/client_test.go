package client_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/kbukum/gqlkit/client"
	goerrors "github.com/kbukum/gqlkit/errors"
	"github.com/kbukum/gqlkit/filter"
	"github.com/kbukum/gqlkit/request"
	"github.com/kbukum/gqlkit/result"
)

func TestRegistry(t *testing.T) {
	tr := &trace{}
	reg := client.NewRegistry[country]()

	for _, name := range []string{"observability:tracing", "logging", "resilience:retry"} {
		if err := reg.Register(name, tr.tag(name)); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	t.Run("names in registration order", func(t *testing.T) {
		want := []string{"observability:tracing", "logging", "resilience:retry"}
		if got := reg.Names(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("re-register keeps position", func(t *testing.T) {
		if err := reg.Register("logging", tr.tag("logging:v2")); err != nil {
			t.Fatalf("register: %v", err)
		}
		if got := reg.Names(); len(got) != 3 || got[1] != "logging" {
			t.Errorf("expected logging to stay second, got %v", got)
		}
		if _, ok := reg.Get("logging"); !ok {
			t.Error("expected logging to be registered")
		}
	})

	t.Run("invalid registrations", func(t *testing.T) {
		if err := reg.Register("", tr.tag("x")); !goerrors.HasCode(err, goerrors.ErrCodeInvalidInput) {
			t.Errorf("expected INVALID_INPUT for empty name, got %v", err)
		}
		if err := reg.Register("x", nil); !goerrors.HasCode(err, goerrors.ErrCodeInvalidInput) {
			t.Errorf("expected INVALID_INPUT for nil middleware, got %v", err)
		}
		if _, ok := reg.Get("x"); ok {
			t.Error("failed registration must not be stored")
		}
	})
}

func TestClient_SelectsMiddlewaresPerRequest(t *testing.T) {
	tr := &trace{}
	reg := client.NewRegistry[country]()
	names := []string{"observability:tracing", "observability:metrics", "logging", "resilience:retry"}
	for _, name := range names {
		_ = reg.Register(name, tr.tag(name))
	}
	c := client.New("countries", client.Static("static", result.Raw[country]{Data: country{Code: "DE"}}), reg)
	ctx := context.Background()

	tests := []struct {
		name      string
		inclusive []filter.Filter
		exclusive []filter.Filter
		want      []string
	}{
		{"no filters runs everything", nil, nil, names},
		{"inclusive group", []filter.Filter{filter.Named("observability:*")}, nil, []string{"observability:tracing", "observability:metrics"}},
		{"exclusive removes", nil, []filter.Filter{filter.Named("logging")}, []string{"observability:tracing", "observability:metrics", "resilience:retry"}},
		{"exclusive wins over inclusive", []filter.Filter{filter.Prefix("observability")}, []filter.Filter{filter.Named("*:metrics")}, []string{"observability:tracing"}},
		{"nothing selected", []filter.Filter{filter.Named("missing")}, nil, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := query().WithInclusiveFilters(tc.inclusive...).WithExclusiveFilters(tc.exclusive...).Build()
			it, err := c.Execute(ctx, d)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if got := drain(ctx, it); len(got) != 1 || got[0].Data.Code != "DE" {
				t.Errorf("expected the transport result, got %v", got)
			}
			if got := tr.reset(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
			if got := c.Selected(d); len(got) != len(tc.want) {
				t.Errorf("Selected disagrees with execution: %v", got)
			}
		})
	}
}

func TestClient_Guards(t *testing.T) {
	ctx := context.Background()

	if _, err := client.New[country]("c", client.Static[country]("s"), nil).Execute(ctx, nil); !goerrors.HasCode(err, goerrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for nil descriptor, got %v", err)
	}

	noTransport := client.New[country]("c", nil, nil)
	if noTransport.IsAvailable(ctx) {
		t.Error("client without transport must not be available")
	}
	if _, err := noTransport.Execute(ctx, query().Build()); !goerrors.HasCode(err, goerrors.ErrCodeServiceUnavailable) {
		t.Errorf("expected SERVICE_UNAVAILABLE, got %v", err)
	}
}

func TestStaticAndFunc(t *testing.T) {
	ctx := context.Background()
	want := []result.Raw[country]{{Data: country{Code: "DE"}, Loading: true}, {Data: country{Code: "DE", Name: "Germany"}}}

	it, err := client.Static("static", want...).Execute(ctx, query().Build())
	if err != nil {
		t.Fatalf("static: %v", err)
	}
	if got := drain(ctx, it); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	fn := client.Func("func", func(_ context.Context, _ *request.Descriptor) ([]result.Raw[country], error) {
		return nil, errTransient
	})
	if _, err := fn.Execute(ctx, query().Build()); err != errTransient {
		t.Errorf("expected transport error, got %v", err)
	}
}
