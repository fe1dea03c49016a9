package redis

import (
	"context"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/config"
	"github.com/alicebob/miniredis/v2"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewClient(config.RedisConfig{Addr: mr.Addr(), PoolSize: 2})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNewClientUnreachable(t *testing.T) {
	if _, err := NewClient(config.RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatal("expected ping failure")
	}
}

func TestAddLexAndRange(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	added, err := c.AddLex(ctx, "ac", "banana", "apple", "apricot", "apple")
	if err != nil {
		t.Fatalf("AddLex: %v", err)
	}
	if added != 3 {
		t.Errorf("added = %d, want 3", added)
	}

	got, err := c.RangeByLex(ctx, "ac", "ap", "ap\xff", 10)
	if err != nil {
		t.Fatalf("RangeByLex: %v", err)
	}
	want := []string{"apple", "apricot"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	limited, err := c.RangeByLex(ctx, "ac", "a", "a\xff", 1)
	if err != nil {
		t.Fatalf("RangeByLex: %v", err)
	}
	if len(limited) != 1 || limited[0] != "apple" {
		t.Errorf("limited = %v", limited)
	}

	n, err := c.Card(ctx, "ac")
	if err != nil || n != 3 {
		t.Errorf("Card = %d, %v", n, err)
	}

	if err := c.Del(ctx, "ac"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if n, err := c.Card(ctx, "ac"); err != nil || n != 0 {
		t.Errorf("Card after Del = %d, %v", n, err)
	}
}

func TestAddLexEmpty(t *testing.T) {
	c := newTestClient(t)
	added, err := c.AddLex(context.Background(), "ac")
	if err != nil || added != 0 {
		t.Errorf("AddLex() = %d, %v", added, err)
	}
}
