package autocomplete

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/study-search/internal/study"
	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/study-search/pkg/errors"
	pkgredis "github.com/Adithya-Monish-Kumar-K/study-search/pkg/redis"
	"github.com/alicebob/miniredis/v2"
)

func testConfig() config.AutocompleteConfig {
	return config.AutocompleteConfig{Enabled: true, Key: "autocomplete", DefaultLimit: 5, MaxLimit: 10}
}

func newRedisSuggester(t *testing.T) (*Suggester, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := pkgredis.NewClient(config.RedisConfig{Addr: mr.Addr(), PoolSize: 2})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return New(client, testConfig()), mr
}

func TestSuggestPrefix(t *testing.T) {
	s, _ := newRedisSuggester(t)
	ctx := context.Background()
	err := s.Add(ctx,
		"Machine Learning in Psychology",
		"Machine Vision and AI",
		"Machine Ethics",
		"Behavioral Neuroscience",
	)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := s.Suggest(ctx, "mach", 0)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	want := []string{"Machine Ethics", "Machine Learning in Psychology", "Machine Vision and AI"}
	if !slices.Equal(got, want) {
		t.Errorf("Suggest(mach) = %q, want %q", got, want)
	}

	upper, err := s.Suggest(ctx, "MACHINE V", 0)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if !slices.Equal(upper, []string{"Machine Vision and AI"}) {
		t.Errorf("Suggest(MACHINE V) = %q", upper)
	}

	none, err := s.Suggest(ctx, "biology", 0)
	if err != nil || len(none) != 0 {
		t.Errorf("Suggest(biology) = %q, %v", none, err)
	}
}

func TestSuggestLimits(t *testing.T) {
	s, _ := newRedisSuggester(t)
	ctx := context.Background()
	var titles []string
	for _, c := range "abcdefghijklmnop" {
		titles = append(titles, "Study "+string(c))
	}
	if err := s.Add(ctx, titles...); err != nil {
		t.Fatalf("Add: %v", err)
	}

	tests := []struct {
		limit int
		want  int
	}{
		{0, 5},
		{-1, 5},
		{3, 3},
		{100, 10},
	}
	for _, tt := range tests {
		got, err := s.Suggest(ctx, "study", tt.limit)
		if err != nil {
			t.Fatalf("Suggest: %v", err)
		}
		if len(got) != tt.want {
			t.Errorf("limit %d: got %d suggestions, want %d", tt.limit, len(got), tt.want)
		}
	}
}

func TestSuggestEmptyPrefix(t *testing.T) {
	s, _ := newRedisSuggester(t)
	got, err := s.Suggest(context.Background(), "", 5)
	if err != nil || got == nil || len(got) != 0 {
		t.Errorf("Suggest(\"\") = %#v, %v", got, err)
	}
}

func TestSeedSkipsEmptyTitles(t *testing.T) {
	s, mr := newRedisSuggester(t)
	err := s.Seed(context.Background(), []study.Study{
		{ID: "1", Title: "AI and Cognitive Science"},
		{ID: "2", Title: ""},
		{ID: "3", Title: "AI and Cognitive Science"},
	})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	members, err := mr.ZMembers("autocomplete")
	if err != nil {
		t.Fatalf("ZMembers: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("members = %q, want one", members)
	}
}

func TestAddRejectsNUL(t *testing.T) {
	s, _ := newRedisSuggester(t)
	err := s.Add(context.Background(), "bad\x00title")
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestSuggestReadsPlainMembers(t *testing.T) {
	s, mr := newRedisSuggester(t)
	mr.ZAdd("autocomplete", 0, "machine ethics")
	got, err := s.Suggest(context.Background(), "mach", 5)
	if err != nil || !slices.Equal(got, []string{"machine ethics"}) {
		t.Errorf("Suggest = %q, %v", got, err)
	}
}

type failingStore struct {
	calls int
}

func (f *failingStore) AddLex(context.Context, string, ...string) (int64, error) {
	f.calls++
	return 0, errors.New("connection refused")
}

func (f *failingStore) RangeByLex(context.Context, string, string, string, int) ([]string, error) {
	f.calls++
	return nil, errors.New("connection refused")
}

func TestStoreFailureIsUnavailable(t *testing.T) {
	store := &failingStore{}
	s := New(store, testConfig())
	ctx := context.Background()

	if _, err := s.Suggest(ctx, "ai", 5); !errors.Is(err, apperrors.ErrUnavailable) {
		t.Fatalf("Suggest err = %v, want ErrUnavailable", err)
	}
	if err := s.Add(ctx, "AI"); !errors.Is(err, apperrors.ErrUnavailable) {
		t.Fatalf("Add err = %v, want ErrUnavailable", err)
	}

	// The breaker opens after repeated failures and stops calling the store.
	for i := 0; i < 10; i++ {
		s.Suggest(ctx, "ai", 5)
	}
	before := store.calls
	if _, err := s.Suggest(ctx, "ai", 5); !errors.Is(err, apperrors.ErrUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if store.calls != before {
		t.Errorf("store called while circuit open")
	}
}
