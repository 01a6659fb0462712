package provider

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// TestRegister_PanicsOnDuplicate verifies the registry fails fast on ambiguous
// backend registration, and that Registered/Kinds observe what was added.
func TestRegister_PanicsOnDuplicate(t *testing.T) {
	f := func(context.Context, Config) (Conn, error) { return nil, nil }

	Register("dup-test", f)
	if !Registered("dup-test") {
		t.Fatal("Registered(dup-test) = false after Register")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("second Register did not panic")
		}
	}()
	Register("dup-test", f)
}

// TestRegister_PanicsOnEmptyKind verifies empty kinds are rejected.
func TestRegister_PanicsOnEmptyKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Register with empty kind did not panic")
		}
	}()
	Register("", func(context.Context, Config) (Conn, error) { return nil, nil })
}

// TestOpen_UnknownKind verifies Open names the unknown kind and the available
// backends.
func TestOpen_UnknownKind(t *testing.T) {
	_, err := Open(context.Background(), "no-such-backend", Config{})
	if err == nil {
		t.Fatal("want error for unknown kind")
	}
}

// TestMessages verifies the error-collection flattening rules: structured
// *Error collections win, errors.Join chains contribute every branch, plain
// errors fall back to their raw text.
func TestMessages(t *testing.T) {
	t.Parallel()

	structured := &Error{
		Op:       "connect",
		Messages: []string{"driver not found", "data source unreachable"},
	}

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"nil", nil, nil},
		{"plain error", errors.New("boom"), []string{"boom"}},
		{"structured collection", structured, []string{"driver not found", "data source unreachable"}},
		{
			"wrapped structured collection",
			fmt.Errorf("open dataset: %w", structured),
			[]string{"driver not found", "data source unreachable"},
		},
		{
			"joined errors",
			errors.Join(errors.New("first"), errors.New("second")),
			[]string{"first", "second"},
		},
		{
			"structured without messages falls back to text",
			&Error{Op: "columns", Err: errors.New("timeout")},
			[]string{"columns: timeout"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Messages(tt.err)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Messages() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
