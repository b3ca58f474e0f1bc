// internal/cli/render.go
//
// 本檔負責統一的輸出格式：帳戶、交易日誌與錯誤訊息。
// 錯誤類別到訊息的對應集中在 message/reason，畫面不自行判斷錯誤型別。

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"bankofjoe/internal/bank"
)

func (s *Session) money(d decimal.Decimal) string {
	return s.cfg.CurrencySymbol + d.StringFixed(2)
}

func (s *Session) currency(format string) string {
	return fmt.Sprintf(format, s.cfg.CurrencySymbol)
}

func (s *Session) render(v bank.AccountView) string {
	return fmt.Sprintf("Account #%d | Owner: %s | Balance: %s | Daily limit: %s | Remaining today: %s",
		v.Number, v.Owner, s.money(v.Balance), v.DailyLimit.StringFixed(2), v.RemainingToday.StringFixed(2))
}

func (s *Session) renderLog(l bank.Log) string {
	sign := "+"
	if l.Direction == "out" {
		sign = "-"
	}
	line := fmt.Sprintf("%s  %-8s %s%s  balance %s",
		l.Time.Format("2006-01-02 15:04:05"), l.Kind, sign, s.money(l.Amount), s.money(l.Balance))
	if l.Counter != 0 {
		if l.Direction == "out" {
			line += fmt.Sprintf("  to #%d", l.Counter)
		} else {
			line += fmt.Sprintf("  from #%d", l.Counter)
		}
	}
	return line
}

// message 將錯誤轉成給使用者看的單行訊息。
// 包裝過的錯誤（例如附帶目前餘額）保留其細節。
func message(err error) string {
	msg := err.Error()
	if msg == "" {
		return "Unexpected error."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// reason 將錯誤歸類為穩定的日誌欄位值。
func reason(err error) string {
	switch {
	case errors.Is(err, bank.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, bank.ErrInvalidRate):
		return "invalid_rate"
	case errors.Is(err, bank.ErrInvalidOwnerName):
		return "invalid_owner_name"
	case errors.Is(err, bank.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, bank.ErrDailyLimitExceeded):
		return "daily_limit_exceeded"
	case errors.Is(err, bank.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, bank.ErrSameAccount):
		return "same_account"
	case errors.Is(err, bank.ErrNonZeroBalance):
		return "non_zero_balance"
	default:
		return "unknown"
	}
}
