// Package bank 定義核心領域模型與業務規則。
// 本檔定義 Account、交易 Log 與唯讀的 AccountView，不含任何 CLI 或設定細節。
// 金額一律以 decimal.Decimal 定點數表示，避免浮點誤差。

package bank

import (
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Kind 為交易日誌的種類。
type Kind string

const (
	KindOpen     Kind = "open"
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
	KindInterest Kind = "interest"
	KindTransfer Kind = "transfer"
)

// Log represents a transaction record.
type Log struct {
	ID        string          `json:"id"`
	Time      time.Time       `json:"time"`
	Kind      Kind            `json:"kind"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
	Counter   int64           `json:"counter_account,omitempty"`
}

// Account represents a bank account.
//
// 帳號、戶名與每日額度於開戶後不再變動；其餘欄位只能在 mu 保護下修改。
// 外部只能透過 AccountView 觀察狀態。
type Account struct {
	mu sync.Mutex

	number     int64
	owner      string
	dailyLimit decimal.Decimal
	openedAt   time.Time
	clock      Clock

	balance        decimal.Decimal
	withdrawnToday decimal.Decimal
	lastWithdrawal Day
	logs           []Log
}

// AccountView 為帳戶某一時點的唯讀值拷貝。
type AccountView struct {
	Number            int64           `json:"number"`
	Owner             string          `json:"owner"`
	Balance           decimal.Decimal `json:"balance"`
	DailyLimit        decimal.Decimal `json:"daily_limit"`
	WithdrawnToday    decimal.Decimal `json:"withdrawn_today"`
	RemainingToday    decimal.Decimal `json:"remaining_today"`
	LastWithdrawalDay Day             `json:"last_withdrawal_day"`
	OpenedAt          time.Time       `json:"opened_at"`
}

func newAccount(number int64, owner string, dailyLimit decimal.Decimal, clock Clock) *Account {
	now := clock.Now()
	return &Account{
		number:         number,
		owner:          owner,
		dailyLimit:     dailyLimit,
		openedAt:       now,
		clock:          clock,
		balance:        decimal.Zero,
		withdrawnToday: decimal.Zero,
		lastWithdrawal: DayOf(now),
	}
}

// Deposit 存款：金額需 > 0；不影響當日提款累計。
func (a *Account) Deposit(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.deposit(amount, KindDeposit, 0)
}

// Withdraw 提款：先檢核金額，再依 today 做換日判斷，最後檢查餘額與每日額度。
// 任何一項失敗都不會改變帳戶狀態；換日歸零只在提款成功時寫回。
func (a *Account) Withdraw(amount decimal.Decimal, today Day) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdraw(amount, today, KindWithdraw, 0)
}

// ApplyInterest 以單期單利入帳：balance += balance * rate，不做進位；
// 只有顯示時才格式化到分。rate 為小數（0.05 代表 5%），回傳入帳的利息。
// 入帳週期由呼叫端決定。
func (a *Account) ApplyInterest(rate decimal.Decimal) (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.applyInterest(rate)
}

// RemainingDailyLimit 回傳 today 當日仍可提領的額度。
// 換日規則與 Withdraw 相同，但僅計算不寫回，讀取不會改變帳戶狀態。
func (a *Account) RemainingDailyLimit(today Day) decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.remaining(today)
}

// View 回傳以 today 計算剩餘額度的唯讀快照。
func (a *Account) View(today Day) AccountView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view(today)
}

// ─────────────────────────────────────────────
// 以下函式皆假設呼叫端已持有 a.mu。
// ─────────────────────────────────────────────

func (a *Account) deposit(amount decimal.Decimal, kind Kind, counter int64) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	a.record(kind, "in", amount, counter)
	return nil
}

func (a *Account) withdraw(amount decimal.Decimal, today Day, kind Kind, counter int64) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	withdrawn := a.withdrawnOn(today)
	if amount.GreaterThan(a.balance) {
		return fmt.Errorf("%w: balance %s", ErrInsufficientFunds, a.balance.StringFixed(2))
	}
	if withdrawn.Add(amount).GreaterThan(a.dailyLimit) {
		return fmt.Errorf("%w: remaining today %s", ErrDailyLimitExceeded, a.dailyLimit.Sub(withdrawn).StringFixed(2))
	}
	a.balance = a.balance.Sub(amount)
	a.withdrawnToday = withdrawn.Add(amount)
	a.lastWithdrawal = today
	a.record(kind, "out", amount, counter)
	return nil
}

func (a *Account) applyInterest(rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.IsNegative() {
		return decimal.Zero, ErrInvalidRate
	}
	interest := a.balance.Mul(rate)
	a.balance = a.balance.Add(interest)
	if interest.IsPositive() {
		a.record(KindInterest, "in", interest, 0)
	}
	return interest, nil
}

// withdrawnOn 回傳 today 當日已提領的累計；跨日時視為零。
func (a *Account) withdrawnOn(today Day) decimal.Decimal {
	if a.lastWithdrawal != today {
		return decimal.Zero
	}
	return a.withdrawnToday
}

func (a *Account) remaining(today Day) decimal.Decimal {
	return a.dailyLimit.Sub(a.withdrawnOn(today))
}

// now 回傳目前時間；零值 Account 沒有注入時鐘時改用系統時間。
func (a *Account) now() time.Time {
	if a.clock == nil {
		return SystemClock{}.Now()
	}
	return a.clock.Now()
}

func (a *Account) view(today Day) AccountView {
	return AccountView{
		Number:            a.number,
		Owner:             a.owner,
		Balance:           a.balance,
		DailyLimit:        a.dailyLimit,
		WithdrawnToday:    a.withdrawnOn(today),
		RemainingToday:    a.remaining(today),
		LastWithdrawalDay: a.lastWithdrawal,
		OpenedAt:          a.openedAt,
	}
}

// record 追加一筆交易日誌，Balance 為本筆交易後的餘額。
func (a *Account) record(kind Kind, direction string, amount decimal.Decimal, counter int64) {
	now := a.now()
	a.logs = append(a.logs, Log{
		ID:        ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Time:      now,
		Kind:      kind,
		Direction: direction,
		Amount:    amount,
		Balance:   a.balance,
		Counter:   counter,
	})
}
