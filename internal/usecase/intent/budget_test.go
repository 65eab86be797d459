package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

func TestBudgetTracker_Check(t *testing.T) {
	tests := []struct {
		name    string
		daily   int64
		monthly int64
		action  BudgetAction
		record  int64
		wantErr error
	}{
		{"below limit", 1000, 10000, BudgetActionReject, 500, nil},
		{"daily reached reject", 100, 0, BudgetActionReject, 100, domain.ErrIntentQuotaExceeded},
		{"monthly reached reject", 0, 500, BudgetActionReject, 500, domain.ErrIntentQuotaExceeded},
		{"exceeded warn", 100, 0, BudgetActionWarn, 200, nil},
		{"unlimited", 0, 0, BudgetActionReject, 999999999, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bt := NewBudgetTracker("test", tt.daily, tt.monthly, tt.action, zap.NewNop())
			bt.Record(tt.record)

			err := bt.Check(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Check() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBudgetTracker_Remaining(t *testing.T) {
	bt := NewBudgetTracker("test", 1000, 10000, BudgetActionWarn, zap.NewNop())
	bt.Record(300)

	if got := bt.RemainingDaily(); got != 700 {
		t.Errorf("daily remaining = %d, want 700", got)
	}
	if got := bt.RemainingMonthly(); got != 9700 {
		t.Errorf("monthly remaining = %d, want 9700", got)
	}

	bt.Record(5000)
	if got := bt.RemainingDaily(); got != 0 {
		t.Errorf("overdrawn daily remaining = %d, want 0", got)
	}
}

func TestBudgetTracker_RemainingUnlimited(t *testing.T) {
	bt := NewBudgetTracker("test", 0, 0, BudgetActionWarn, zap.NewNop())

	if got := bt.RemainingDaily(); got != -1 {
		t.Errorf("expected -1 for unlimited daily, got %d", got)
	}
	if got := bt.RemainingMonthly(); got != -1 {
		t.Errorf("expected -1 for unlimited monthly, got %d", got)
	}
}

func TestBudgetTracker_Rollover(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 31, 23, 0, 0, 0, time.UTC)}
	bt := NewBudgetTracker("test", 100, 1000, BudgetActionReject, zap.NewNop())
	bt.now = clock.now
	bt.markWindows(clock.now())

	bt.Record(100)
	if err := bt.Check(context.Background()); !errors.Is(err, domain.ErrIntentQuotaExceeded) {
		t.Fatalf("expected quota exceeded before midnight, got %v", err)
	}

	clock.t = clock.t.Add(2 * time.Hour) // 2026-11-01 01:00

	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected daily reset after midnight, got %v", err)
	}
	if bt.DailyUsed() != 0 || bt.MonthlyUsed() != 0 {
		t.Errorf("expected both windows reset on month change, got %d/%d", bt.DailyUsed(), bt.MonthlyUsed())
	}
}

func TestBudgetTracker_DailyRolloverKeepsMonth(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	bt := NewBudgetTracker("test", 100, 1000, BudgetActionReject, zap.NewNop())
	bt.now = clock.now
	bt.markWindows(clock.now())

	bt.Record(80)
	clock.t = clock.t.Add(24 * time.Hour)

	if bt.DailyUsed() != 0 {
		t.Errorf("expected daily reset, got %d", bt.DailyUsed())
	}
	if bt.MonthlyUsed() != 80 {
		t.Errorf("expected monthly kept, got %d", bt.MonthlyUsed())
	}
}

func TestBudgetTracker_WithStore_LoadsValues(t *testing.T) {
	store := newMockBudgetStore()
	bt := NewBudgetTracker("prov", 1000, 10000, BudgetActionReject, zap.NewNop())
	now := bt.now()
	store.data[bt.dailyKey(now)] = 300
	store.data[bt.monthlyKey(now)] = 5000

	bt.WithStore(context.Background(), store)

	if bt.DailyUsed() != 300 {
		t.Errorf("expected daily_used=300, got %d", bt.DailyUsed())
	}
	if bt.MonthlyUsed() != 5000 {
		t.Errorf("expected monthly_used=5000, got %d", bt.MonthlyUsed())
	}
}

func TestBudgetTracker_WithStore_LoadError(t *testing.T) {
	store := newMockBudgetStore()
	store.getErr = errors.New("connection refused")

	bt := NewBudgetTracker("prov", 1000, 10000, BudgetActionReject, zap.NewNop())
	bt.WithStore(context.Background(), store)

	if bt.DailyUsed() != 0 || bt.MonthlyUsed() != 0 {
		t.Errorf("expected zero counters on load error, got %d/%d", bt.DailyUsed(), bt.MonthlyUsed())
	}
}

func TestBudgetTracker_Record_PersistsToStore(t *testing.T) {
	store := newMockBudgetStore()
	bt := NewBudgetTracker("prov", 10000, 100000, BudgetActionWarn, zap.NewNop())
	bt.WithStore(context.Background(), store)

	bt.Record(100)
	bt.Record(200)

	now := bt.now()
	if got := store.value(bt.dailyKey(now)); got != 300 {
		t.Errorf("expected stored daily=300, got %d", got)
	}
	if got := store.value(bt.monthlyKey(now)); got != 300 {
		t.Errorf("expected stored monthly=300, got %d", got)
	}
}

func TestBudgetTracker_Record_StoreWriteError(t *testing.T) {
	store := newMockBudgetStore()
	bt := NewBudgetTracker("prov", 1000, 10000, BudgetActionWarn, zap.NewNop())
	bt.WithStore(context.Background(), store)

	store.mu.Lock()
	store.setErr = errors.New("write timeout")
	store.mu.Unlock()

	bt.Record(50)

	if bt.DailyUsed() != 50 {
		t.Errorf("expected in-memory daily_used=50 despite store error, got %d", bt.DailyUsed())
	}
}

func TestBudgetTracker_Keys(t *testing.T) {
	bt := NewBudgetTracker("openai", 0, 0, BudgetActionWarn, zap.NewNop())
	at := time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)

	if got := bt.dailyKey(at); got != "budget:openai:daily:2026-03-07" {
		t.Errorf("daily key = %q", got)
	}
	if got := bt.monthlyKey(at); got != "budget:openai:monthly:2026-03" {
		t.Errorf("monthly key = %q", got)
	}
}

func TestBudgetAction_IsValid(t *testing.T) {
	for _, a := range []BudgetAction{BudgetActionWarn, BudgetActionReject} {
		if !a.IsValid() {
			t.Errorf("%q should be valid", a)
		}
	}
	if BudgetAction("ignore").IsValid() {
		t.Error("unknown action should be invalid")
	}
}
