package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	corenumerator "invetra/internal/core/numerator"
)

// Mock objects
type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

type mockQuerier struct {
	mu sync.Mutex
	// seq simulates the per-key DB sequence value
	seq map[string]int64
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.seq == nil {
		m.seq = make(map[string]int64)
	}

	key, _ := args[0].(string)

	var increment int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}

	m.seq[key] += increment
	return &mockRow{val: m.seq[key]}
}

func (m *mockQuerier) total() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum int64
	for _, v := range m.seq {
		sum += v
	}
	return sum
}

func TestGetNextNumber_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := corenumerator.DefaultConfig("TEST")
	period := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	num, err := svc.GetNextNumber(ctx, cfg, nil, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "TEST-2026-00001" {
		t.Errorf("expected TEST-2026-00001, got %s", num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, nil, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "TEST-2026-00002" {
		t.Errorf("expected TEST-2026-00002, got %s", num)
	}
}

func TestGetNextNumber_DailyReset(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := corenumerator.DocumentConfig("ADJ")

	day1 := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)

	num, err := svc.GetNextNumber(ctx, cfg, nil, day1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ADJ-20260315-0001" {
		t.Errorf("expected ADJ-20260315-0001, got %s", num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, nil, day1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ADJ-20260315-0002" {
		t.Errorf("expected ADJ-20260315-0002, got %s", num)
	}

	// Different day uses a fresh counter
	num, err = svc.GetNextNumber(ctx, cfg, nil, day2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ADJ-20260316-0001" {
		t.Errorf("expected ADJ-20260316-0001, got %s", num)
	}
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := corenumerator.DefaultConfig("ORD")
	period := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	opts := &corenumerator.Options{
		Strategy:  corenumerator.StrategyCached,
		RangeSize: 10,
	}

	// First call allocates the range 1..10 from DB
	num, err := svc.GetNextNumber(ctx, cfg, opts, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ORD-2026-00001" {
		t.Errorf("expected ORD-2026-00001, got %s", num)
	}
	if q.total() != 10 {
		t.Errorf("expected DB value to be 10, got %d", q.total())
	}

	// Second call comes from memory, DB stays put
	num, err = svc.GetNextNumber(ctx, cfg, opts, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ORD-2026-00002" {
		t.Errorf("expected ORD-2026-00002, got %s", num)
	}
	if q.total() != 10 {
		t.Errorf("expected DB value to stay 10, got %d", q.total())
	}

	// Exhaust the range, next call reserves 11..20
	for i := 0; i < 8; i++ {
		_, _ = svc.GetNextNumber(ctx, cfg, opts, period)
	}

	num, err = svc.GetNextNumber(ctx, cfg, opts, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ORD-2026-00011" {
		t.Errorf("expected ORD-2026-00011, got %s", num)
	}
	if q.total() != 20 {
		t.Errorf("expected DB value to be 20, got %d", q.total())
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"RCV-2024-00042", 42},
		{"ADJ-20260315-0007", 7},
		{"PR-00003", 3},
		{"garbage", -1},
	}

	for _, tc := range cases {
		if got := ParseNumber(tc.in); got != tc.want {
			t.Errorf("ParseNumber(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
