package memory

import (
	"context"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New()

	if _, ok, err := store.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "k", []byte("value")); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || string(raw) != "value" {
		t.Fatalf("unexpected get: %q ok=%v err=%v", raw, ok, err)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatalf("expected key removed")
	}
}

func TestStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := New()

	in := []byte("original")
	if err := store.Set(ctx, "k", in); err != nil {
		t.Fatalf("set: %v", err)
	}
	in[0] = 'X'

	out, _, _ := store.Get(ctx, "k")
	if string(out) != "original" {
		t.Fatalf("store aliases caller buffer: %q", out)
	}

	out[0] = 'Y'
	again, _, _ := store.Get(ctx, "k")
	if string(again) != "original" {
		t.Fatalf("get returns aliased buffer: %q", again)
	}
}

func TestStoreEmptyValueIsPresent(t *testing.T) {
	ctx := context.Background()
	store := New()

	if err := store.Set(ctx, "k", nil); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, ok, err := store.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("empty value must still be present, ok=%v err=%v", ok, err)
	}
	if len(raw) != 0 {
		t.Fatalf("expected empty value, got %q", raw)
	}
}
