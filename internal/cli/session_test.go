// internal/cli/session_test.go
//
// 本檔為 cli 層的整合測試：以字串模擬使用者輸入，驗證選單流程、
// 輸入重試、錯誤訊息與 bank 層狀態是否一致。

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"bankofjoe/internal/bank"
	"bankofjoe/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		BankName:          "TEST BANK",
		CurrencySymbol:    "$",
		DefaultDailyLimit: decimal.NewFromInt(50),
	}
}

func newTestBank() *bank.Bank {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return bank.NewBank(bank.WithClock(bank.ClockFunc(func() time.Time { return now })))
}

// run 以多行輸入執行一次 session，回傳完整輸出。
func run(t *testing.T, b *bank.Bank, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	s := NewSession(b, testConfig(), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, zap.NewNop())
	if err := s.Run(); err != nil {
		t.Fatalf("Run err=%v", err)
	}
	return out.String()
}

func mustContain(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("output missing %q\n--- output ---\n%s", w, out)
		}
	}
}

// TestSessionScenario 開戶 100、額度留白（預設 50）；提 30 後剩餘額度 20；
// 同日再提 30 失敗；轉帳後列出兩個帳戶。
func TestSessionScenario(t *testing.T) {
	b := newTestBank()
	out := run(t, b,
		"1", "Joe", "100", "",
		"4", "1001", "30",
		"4", "1001", "30",
		"1", "Ann", "0", "10",
		"6", "1001", "1002", "10",
		"8",
		"0",
	)

	mustContain(t, out,
		"TEST BANK",
		"Account opened successfully!",
		"Account #1001 | Owner: Joe | Balance: $100.00 | Daily limit: 50.00 | Remaining today: 50.00",
		"Withdrawal successful.",
		"Account #1001 | Owner: Joe | Balance: $70.00 | Daily limit: 50.00 | Remaining today: 20.00",
		"Daily limit exceeded: remaining today 20.00.",
		"Transfer successful.",
		"Account #1002 | Owner: Ann | Balance: $10.00 | Daily limit: 10.00 | Remaining today: 10.00",
		"Goodbye!",
	)

	v, err := b.Lookup(1001)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Balance.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("balance=%s want=60", v.Balance)
	}
	if got := len(b.ListAccounts()); got != 2 {
		t.Fatalf("accounts=%d want=2", got)
	}
}

func TestSessionRepromptsInvalidInput(t *testing.T) {
	b := newTestBank()
	out := run(t, b,
		"42",
		"1", "Joe", "lots", "20", "abc", "5",
		"3", "x1001", "1001", "", "2.5",
		"0",
	)
	mustContain(t, out,
		"Invalid choice.",
		"Please enter a valid number.",
		"Please enter a valid integer.",
		"Deposit successful.",
		"Balance: $22.50",
	)
}

func TestSessionValidationErrors(t *testing.T) {
	b := newTestBank()
	out := run(t, b,
		"1", "  ", "10", "10",
		"1", "Joe", "10", "0",
		"3", "999", "5",
		"4", "1001", "-1",
		"1", "Joe", "10", "10",
		"4", "1001", "11",
		"5", "1001", "-3",
		"6", "1001", "1001", "1",
		"0",
	)
	mustContain(t, out,
		"Owner name required.",
		"Amount must be positive.",
		"Account not found.",
		"Insufficient funds: balance 10.00.",
		"Rate cannot be negative.",
		"Cannot transfer to the same account.",
	)
}

func TestSessionInterestAndHistory(t *testing.T) {
	b := newTestBank()
	out := run(t, b,
		"1", "Joe", "100", "",
		"5", "1001", "5",
		"1", "Ann", "0", "",
		"6", "1001", "1002", "25",
		"9", "1001",
		"9", "1002",
		"0",
	)
	mustContain(t, out,
		"Interest $5.00 credited.",
		"Balance: $105.00",
		"open     +$100.00  balance $100.00",
		"interest +$5.00  balance $105.00",
		"transfer -$25.00  balance $80.00  to #1002",
		"transfer +$25.00  balance $25.00  from #1001",
	)
}

func TestSessionCloseAccount(t *testing.T) {
	b := newTestBank()
	out := run(t, b,
		"1", "Joe", "10", "",
		"2", "1001", "y",
		"4", "1001", "10",
		"2", "1001", "n",
		"2", "1001", "Y",
		"7", "1001",
		"8",
		"0",
	)
	mustContain(t, out,
		"Account balance must be zero before closing.",
		"Cancelled.",
		"Account closed.",
		"Account not found.",
		"No accounts yet.",
	)
	if _, err := b.Lookup(1001); !errors.Is(err, bank.ErrAccountNotFound) {
		t.Fatalf("account should be closed, got %v", err)
	}
}

// TestSessionEndsOnEOF 輸入在畫面中途結束時，session 正常結束而非回傳錯誤。
func TestSessionEndsOnEOF(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(newTestBank(), testConfig(), strings.NewReader("1\nJoe\n"), &out, nil)
	if err := s.Run(); err != nil {
		t.Fatalf("Run err=%v", err)
	}
	mustContain(t, out.String(), "Initial deposit ($): ", "Goodbye!")
}

func TestSessionLogsRejections(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var out bytes.Buffer
	s := NewSession(newTestBank(), testConfig(), strings.NewReader("7\n1234\n0\n"), &out, zap.New(core))
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}

	entries := logs.FilterMessage("operation rejected").All()
	if len(entries) != 1 {
		t.Fatalf("rejection logs=%d want=1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["reason"] != "account_not_found" || ctx["session"] != s.ID() {
		t.Fatalf("unexpected log fields: %v", ctx)
	}
}

func TestReason(t *testing.T) {
	cases := map[error]string{
		bank.ErrInvalidAmount:                                     "invalid_amount",
		fmt.Errorf("%w: balance 1.00", bank.ErrInsufficientFunds): "insufficient_funds",
		fmt.Errorf("%w: remaining 0", bank.ErrDailyLimitExceeded): "daily_limit_exceeded",
		bank.ErrNonZeroBalance:                                    "non_zero_balance",
		errors.New("other"):                                       "unknown",
	}
	for err, want := range cases {
		if got := reason(err); got != want {
			t.Fatalf("reason(%v)=%q want=%q", err, got, want)
		}
	}
}
