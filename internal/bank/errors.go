// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 皆為本地輸入驗證失敗，由上層 CLI 轉換成使用者可讀的訊息；不會自動重試。
// 需要附帶細節（例如目前餘額、今日剩餘額度）時，以 fmt.Errorf("%w: ...") 包裝，
// 呼叫端一律以 errors.Is 判斷類別。

package bank

import "errors"

var (
	// ErrInvalidAmount 代表金額非法（存提轉帳 <= 0、開戶存款為負、每日額度 <= 0）。
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidRate 代表利率為負。
	ErrInvalidRate = errors.New("rate cannot be negative")

	// ErrInvalidOwnerName 代表戶名為空白。
	ErrInvalidOwnerName = errors.New("owner name required")

	// ErrInsufficientFunds 代表餘額不足以支應提款或轉帳。
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDailyLimitExceeded 代表本次提款會超過當日累計提款上限。
	ErrDailyLimitExceeded = errors.New("daily limit exceeded")

	// ErrAccountNotFound 代表帳戶不存在（或已結清）。
	ErrAccountNotFound = errors.New("account not found")

	// ErrSameAccount 代表轉帳來源與目標帳戶相同。
	ErrSameAccount = errors.New("cannot transfer to the same account")

	// ErrNonZeroBalance 代表結清帳戶前餘額必須為零。
	ErrNonZeroBalance = errors.New("account balance must be zero before closing")
)
