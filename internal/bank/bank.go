// internal/bank/bank.go

// Package bank 定義核心商業邏輯：開戶、結清、存提款、計息、轉帳、查詢與交易日誌。
//
// 鎖的順序固定為：先 Bank.mu，再依帳號由小到大取得 Account.mu，避免死結。
// - 會改動帳戶集合的操作（開戶、結清）持有 Bank.mu 寫鎖；
// - 其餘操作持有 Bank.mu 讀鎖直到完成，確保執行中帳戶不會被結清。
package bank

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultStartNumber 為第一個帳號。
const DefaultStartNumber int64 = 1001

// Bank 為聚合根 (Aggregate Root)：獨佔管理所有帳戶。
// - nextNumber：下一個要發出的帳號，只在寫鎖內與插入同時遞增。
// - accts：帳號 → 帳戶；order 保留開戶順序供 ListAccounts 使用。
type Bank struct {
	mu         sync.RWMutex
	nextNumber int64
	accts      map[int64]*Account
	order      []int64

	clock Clock
	log   *zap.Logger
}

// Option 調整 NewBank 的預設值。
type Option func(*Bank)

// WithClock 注入時鐘，換日判斷與日誌時間皆以此為準。
func WithClock(c Clock) Option {
	return func(b *Bank) {
		if c != nil {
			b.clock = c
		}
	}
}

// WithStartNumber 設定第一個帳號；<= 0 時忽略。
func WithStartNumber(n int64) Option {
	return func(b *Bank) {
		if n > 0 {
			b.nextNumber = n
		}
	}
}

// WithLogger 注入 zap logger。
func WithLogger(l *zap.Logger) Option {
	return func(b *Bank) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBank 建立空白銀行實例（僅 in-memory 狀態，程序結束即消失）。
func NewBank(opts ...Option) *Bank {
	b := &Bank{
		nextNumber: DefaultStartNumber,
		accts:      make(map[int64]*Account),
		clock:      SystemClock{},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bank) today() Day { return DayOf(b.clock.Now()) }

// OpenAccount 開戶並回傳新帳號。
// 戶名去除前後空白後不得為空；初始存款不得為負；每日提款額度必須 > 0。
// 所有檢核在發號前完成，失敗時不會消耗帳號。
func (b *Bank) OpenAccount(owner string, initialDeposit, dailyLimit decimal.Decimal) (int64, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return 0, ErrInvalidOwnerName
	}
	if initialDeposit.IsNegative() || !dailyLimit.IsPositive() {
		return 0, ErrInvalidAmount
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	number := b.nextNumber
	a := newAccount(number, owner, dailyLimit, b.clock)
	if initialDeposit.IsPositive() {
		a.balance = initialDeposit
		a.record(KindOpen, "in", initialDeposit, 0)
	}
	b.accts[number] = a
	b.order = append(b.order, number)
	b.nextNumber++

	b.log.Info("account opened",
		zap.Int64("account", number),
		zap.String("owner", owner),
		zap.String("initial_deposit", initialDeposit.StringFixed(2)),
		zap.String("daily_limit", dailyLimit.StringFixed(2)))
	return number, nil
}

// CloseAccount 結清帳戶並回傳結清前的最終狀態。
// 餘額不為零時拒絕結清（ErrNonZeroBalance），呼叫端需先提領或轉出。
func (b *Bank) CloseAccount(number int64) (AccountView, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.accts[number]
	if !ok {
		return AccountView{}, ErrAccountNotFound
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.balance.IsZero() {
		return AccountView{}, ErrNonZeroBalance
	}

	delete(b.accts, number)
	for i, n := range b.order {
		if n == number {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	b.log.Info("account closed", zap.Int64("account", number))
	return a.view(b.today()), nil
}

// Lookup 依帳號取得帳戶的唯讀快照；若不存在回傳 ErrAccountNotFound。
func (b *Bank) Lookup(number int64) (AccountView, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	a, ok := b.accts[number]
	if !ok {
		return AccountView{}, ErrAccountNotFound
	}
	return a.View(b.today()), nil
}

// ListAccounts 依開戶順序回傳所有帳戶的快照；沒有帳戶時回傳空切片。
func (b *Bank) ListAccounts() []AccountView {
	b.mu.RLock()
	defer b.mu.RUnlock()
	today := b.today()
	out := make([]AccountView, 0, len(b.order))
	for _, n := range b.order {
		out = append(out, b.accts[n].View(today))
	}
	return out
}

// Deposit 依帳號存款，回傳存款後的快照。
func (b *Bank) Deposit(number int64, amount decimal.Decimal) (AccountView, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	a, ok := b.accts[number]
	if !ok {
		return AccountView{}, ErrAccountNotFound
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.deposit(amount, KindDeposit, 0); err != nil {
		return AccountView{}, err
	}
	b.log.Debug("deposit", zap.Int64("account", number), zap.String("amount", amount.StringFixed(2)))
	return a.view(b.today()), nil
}

// Withdraw 依帳號以今日日期提款，回傳提款後的快照。
func (b *Bank) Withdraw(number int64, amount decimal.Decimal) (AccountView, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	a, ok := b.accts[number]
	if !ok {
		return AccountView{}, ErrAccountNotFound
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	today := b.today()
	if err := a.withdraw(amount, today, KindWithdraw, 0); err != nil {
		return AccountView{}, err
	}
	b.log.Debug("withdraw", zap.Int64("account", number), zap.String("amount", amount.StringFixed(2)))
	return a.view(today), nil
}

// ApplyInterest 對單一帳戶計息，回傳入帳利息與計息後的快照。
func (b *Bank) ApplyInterest(number int64, rate decimal.Decimal) (decimal.Decimal, AccountView, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	a, ok := b.accts[number]
	if !ok {
		return decimal.Zero, AccountView{}, ErrAccountNotFound
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	interest, err := a.applyInterest(rate)
	if err != nil {
		return decimal.Zero, AccountView{}, err
	}
	b.log.Debug("interest applied",
		zap.Int64("account", number),
		zap.String("rate", rate.String()),
		zap.String("interest", interest.StringFixed(2)))
	return interest, a.view(b.today()), nil
}

// ApplyInterestAll 對所有帳戶以相同利率計息，回傳入帳利息總額。
// 利率先行檢核，負利率時不會改動任何帳戶。
func (b *Bank) ApplyInterestAll(rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.IsNegative() {
		return decimal.Zero, ErrInvalidRate
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	total := decimal.Zero
	for _, n := range b.order {
		interest, err := b.accts[n].ApplyInterest(rate)
		if err != nil {
			return total, err
		}
		total = total.Add(interest)
	}
	b.log.Info("interest posted",
		zap.Int("accounts", len(b.order)),
		zap.String("rate", rate.String()),
		zap.String("total", total.StringFixed(2)))
	return total, nil
}

// Transfer 轉帳 = 來源帳戶提款 + 目標帳戶存款，兩者在同一段臨界區內完成：
// 1) 檢核帳戶存在、非同一帳戶、金額 > 0 → 2) 依帳號遞增順序鎖定兩帳戶
// → 3) 來源提款（可能因餘額或每日額度失敗）→ 4) 目標存款，雙邊各記一筆日誌。
// 提款失敗時不會入帳，呼叫端觀察不到任何部分變更。
func (b *Bank) Transfer(from, to int64, amount decimal.Decimal) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	src, ok1 := b.accts[from]
	dst, ok2 := b.accts[to]
	if !ok1 || !ok2 {
		return ErrAccountNotFound
	}
	if from == to {
		return ErrSameAccount
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	first, second := src, dst
	if first.number > second.number {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if err := src.withdraw(amount, b.today(), KindTransfer, to); err != nil {
		return err
	}
	// 金額已檢核為正數，存款不會失敗。
	_ = dst.deposit(amount, KindTransfer, from)

	b.log.Info("transfer",
		zap.Int64("from", from),
		zap.Int64("to", to),
		zap.String("amount", amount.StringFixed(2)))
	return nil
}

// Logs 回傳指定帳戶的交易日誌（值拷貝），避免外部修改內部切片。
func (b *Bank) Logs(number int64) ([]Log, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	a, ok := b.accts[number]
	if !ok {
		return nil, ErrAccountNotFound
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Log, len(a.logs))
	copy(out, a.logs)
	return out, nil
}
