package cache

import (
	"context"
	"strings"
	"testing"
)

func TestKeyIsDeterministic(t *testing.T) {
	a := Key("Hello", "en", "fr")
	b := Key("Hello", "en", "fr")
	if a != b {
		t.Errorf("same inputs gave different keys: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "translate:") {
		t.Errorf("key %q missing namespace prefix", a)
	}
}

func TestKeySeparatesInputs(t *testing.T) {
	keys := map[string]string{
		"text":   Key("Hello", "en", "fr"),
		"source": Key("Hello", "de", "fr"),
		"target": Key("Hello", "en", "es"),
		// Field boundaries must matter: source "enf"+target "r" is not
		// source "en"+target "fr".
		"shift": Key("Hello", "enf", "r"),
	}
	seen := make(map[string]string)
	for name, k := range keys {
		if prev, ok := seen[k]; ok {
			t.Errorf("key collision between %s and %s", prev, name)
		}
		seen[k] = name
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache

	var out string
	if err := c.Get(context.Background(), "k", &out); err != ErrMiss {
		t.Errorf("nil cache Get = %v, want ErrMiss", err)
	}
	if err := c.Set(context.Background(), "k", "v"); err != nil {
		t.Errorf("nil cache Set = %v, want nil", err)
	}
}
