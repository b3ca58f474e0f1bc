package scheduler

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"bankofjoe/internal/bank"
)

type failingPoster struct{ calls int }

func (p *failingPoster) ApplyInterestAll(decimal.Decimal) (decimal.Decimal, error) {
	p.calls++
	return decimal.Zero, errors.New("boom")
}

func TestPostInterestCreditsAllAccounts(t *testing.T) {
	b := bank.NewBank()
	n1, _ := b.OpenAccount("A", decimal.NewFromInt(100), decimal.NewFromInt(10))
	n2, _ := b.OpenAccount("B", decimal.NewFromInt(300), decimal.NewFromInt(10))

	s := NewInterestScheduler(b, "@yearly", decimal.RequireFromString("0.02"), zap.NewNop())
	s.PostInterest()

	v1, _ := b.Lookup(n1)
	v2, _ := b.Lookup(n2)
	if !v1.Balance.Equal(decimal.NewFromInt(102)) || !v2.Balance.Equal(decimal.NewFromInt(306)) {
		t.Fatalf("balances after posting: %s %s", v1.Balance, v2.Balance)
	}
}

func TestPostInterestLogsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := &failingPoster{}
	s := NewInterestScheduler(p, "@yearly", decimal.RequireFromString("0.01"), zap.New(core))

	s.PostInterest()

	if p.calls != 1 {
		t.Fatalf("calls=%d want=1", p.calls)
	}
	if got := logs.FilterMessage("interest posting failed").Len(); got != 1 {
		t.Fatalf("failure logs=%d want=1", got)
	}
}

func TestStartAndStop(t *testing.T) {
	s := NewInterestScheduler(bank.NewBank(), "0 0 1 1 *", decimal.RequireFromString("0.01"), zap.NewNop())
	if err := s.Start(); err != nil {
		t.Fatalf("Start err=%v", err)
	}
	<-s.Stop().Done()

	bad := NewInterestScheduler(bank.NewBank(), "not a schedule", decimal.Zero, zap.NewNop())
	if err := bad.Start(); err == nil {
		t.Fatal("expected invalid schedule error")
	}
}
