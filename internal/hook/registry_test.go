// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package hook

import (
	"errors"
	"reflect"
	"testing"

	"github.com/olegiv/ocms-content/internal/testutil"
)

func newTestRegistry() *Registry[string] {
	return NewRegistry[string](testutil.TestLoggerSilent())
}

func TestRegistry_RegistrationOrderWithoutConstraints(t *testing.T) {
	r := newTestRegistry()
	for _, name := range []string{"c", "a", "b"} {
		if err := r.Register(name, "provider-"+name); err != nil {
			t.Fatalf("Register(%q): %v", name, err)
		}
	}
	if err := r.Freeze(); err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	got, err := r.Ordered()
	if err != nil {
		t.Fatalf("Ordered: %v", err)
	}
	want := []string{"provider-c", "provider-a", "provider-b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Ordered() = %v, want %v", got, want)
	}
}

func TestRegistry_Constraints(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *Registry[string])
		want  []string
	}{
		{
			name: "after",
			setup: func(r *Registry[string]) {
				_ = r.Register("label", "label", After("slug"))
				_ = r.Register("slug", "slug")
			},
			want: []string{"slug", "label"},
		},
		{
			name: "before",
			setup: func(r *Registry[string]) {
				_ = r.Register("label", "label")
				_ = r.Register("slug", "slug", Before("label"))
			},
			want: []string{"slug", "label"},
		},
		{
			name: "chain against registration order",
			setup: func(r *Registry[string]) {
				_ = r.Register("a", "a", After("b"))
				_ = r.Register("b", "b", After("c"))
				_ = r.Register("c", "c")
			},
			want: []string{"c", "b", "a"},
		},
		{
			name: "unconstrained keep registration order",
			setup: func(r *Registry[string]) {
				_ = r.Register("hidden", "hidden")
				_ = r.Register("label", "label", After("slug"))
				_ = r.Register("slug", "slug")
			},
			want: []string{"hidden", "slug", "label"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry()
			tt.setup(r)
			if err := r.Freeze(); err != nil {
				t.Fatalf("Freeze: %v", err)
			}
			if got := r.Names(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Names() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_Errors(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		r := newTestRegistry()
		_ = r.Register("a", "a")
		if err := r.Register("a", "again"); !errors.Is(err, ErrDuplicate) {
			t.Errorf("err = %v, want ErrDuplicate", err)
		}
	})

	t.Run("unknown dependency", func(t *testing.T) {
		r := newTestRegistry()
		_ = r.Register("a", "a", After("ghost"))
		if err := r.Freeze(); !errors.Is(err, ErrUnknown) {
			t.Errorf("err = %v, want ErrUnknown", err)
		}
	})

	t.Run("cycle", func(t *testing.T) {
		r := newTestRegistry()
		_ = r.Register("a", "a", After("b"))
		_ = r.Register("b", "b", After("a"))
		_ = r.Register("c", "c")
		err := r.Freeze()
		if !errors.Is(err, ErrCycle) {
			t.Fatalf("err = %v, want ErrCycle", err)
		}
	})

	t.Run("register after freeze", func(t *testing.T) {
		r := newTestRegistry()
		_ = r.Freeze()
		if err := r.Register("late", "late"); !errors.Is(err, ErrFrozen) {
			t.Errorf("err = %v, want ErrFrozen", err)
		}
	})

	t.Run("ordered before freeze", func(t *testing.T) {
		r := newTestRegistry()
		if _, err := r.Ordered(); !errors.Is(err, ErrNotFrozen) {
			t.Errorf("err = %v, want ErrNotFrozen", err)
		}
	})
}
