// internal/cli/screens.go
//
// 各選單畫面。回傳的 error 只代表輸入結束或 I/O 失敗；
// 業務錯誤（金額非法、餘額不足…）在畫面內輸出後即返回選單。

package cli

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

func (s *Session) openAccount() error {
	s.header("Open New Account")
	owner, err := s.readLine("Owner name: ")
	if err != nil {
		return err
	}
	initial, err := s.readAmount(s.currency("Initial deposit (%s): "), nil)
	if err != nil {
		return err
	}
	fallback := s.cfg.DefaultDailyLimit
	limit, err := s.readAmount(s.currency("Daily withdrawal limit (%s, blank for "+fallback.StringFixed(2)+"): "), &fallback)
	if err != nil {
		return err
	}

	number, err := s.bank.OpenAccount(owner, initial, limit)
	if err != nil {
		s.fail("open", err)
		return nil
	}
	s.printf("\nAccount opened successfully!\n")
	return s.show(number)
}

func (s *Session) closeAccount() error {
	s.header("Close Account")
	number, err := s.readNumber("Account number: ")
	if err != nil {
		return err
	}
	v, err := s.bank.Lookup(number)
	if err != nil {
		s.fail("close", err)
		return nil
	}
	s.printf("Current state:\n%s\n", s.render(v))
	confirm, err := s.readLine("Close this account? (requires zero balance) [y/N]: ")
	if err != nil {
		return err
	}
	if strings.ToLower(confirm) != "y" {
		s.printf("Cancelled.\n")
		return nil
	}
	if _, err := s.bank.CloseAccount(number); err != nil {
		s.fail("close", err)
		return nil
	}
	s.printf("Account closed.\n")
	return nil
}

func (s *Session) deposit() error {
	s.header("Deposit")
	number, err := s.readNumber("Account number: ")
	if err != nil {
		return err
	}
	amount, err := s.readAmount(s.currency("Amount (%s): "), nil)
	if err != nil {
		return err
	}
	v, err := s.bank.Deposit(number, amount)
	if err != nil {
		s.fail("deposit", err)
		return nil
	}
	s.printf("Deposit successful.\n%s\n", s.render(v))
	return nil
}

func (s *Session) withdraw() error {
	s.header("Withdraw")
	number, err := s.readNumber("Account number: ")
	if err != nil {
		return err
	}
	amount, err := s.readAmount(s.currency("Amount (%s): "), nil)
	if err != nil {
		return err
	}
	v, err := s.bank.Withdraw(number, amount)
	if err != nil {
		s.fail("withdraw", err)
		return nil
	}
	s.printf("Withdrawal successful.\n%s\n", s.render(v))
	return nil
}

// applyInterest 讀取百分比利率（5 代表 5%），轉為小數後入帳。
func (s *Session) applyInterest() error {
	s.header("Apply Interest")
	number, err := s.readNumber("Account number: ")
	if err != nil {
		return err
	}
	percent, err := s.readAmount("Rate (%): ", nil)
	if err != nil {
		return err
	}
	interest, v, err := s.bank.ApplyInterest(number, percent.Div(hundred))
	if err != nil {
		s.fail("interest", err)
		return nil
	}
	s.printf("Interest %s credited.\n%s\n", s.money(interest), s.render(v))
	return nil
}

func (s *Session) transfer() error {
	s.header("Transfer")
	from, err := s.readNumber("From account number: ")
	if err != nil {
		return err
	}
	to, err := s.readNumber("To account number: ")
	if err != nil {
		return err
	}
	amount, err := s.readAmount(s.currency("Amount (%s): "), nil)
	if err != nil {
		return err
	}
	if err := s.bank.Transfer(from, to, amount); err != nil {
		s.fail("transfer", err)
		return nil
	}
	s.printf("Transfer successful.\n")
	if err := s.show(from); err != nil {
		return err
	}
	return s.show(to)
}

func (s *Session) lookup() error {
	s.header("Lookup Account")
	number, err := s.readNumber("Account number: ")
	if err != nil {
		return err
	}
	return s.show(number)
}

func (s *Session) list() error {
	s.header("All Accounts")
	all := s.bank.ListAccounts()
	if len(all) == 0 {
		s.printf("No accounts yet.\n")
		return nil
	}
	for _, v := range all {
		s.printf("%s\n", s.render(v))
	}
	return nil
}

func (s *Session) history() error {
	s.header("Transaction History")
	number, err := s.readNumber("Account number: ")
	if err != nil {
		return err
	}
	logs, err := s.bank.Logs(number)
	if err != nil {
		s.fail("history", err)
		return nil
	}
	if len(logs) == 0 {
		s.printf("No transactions yet.\n")
		return nil
	}
	for _, l := range logs {
		s.printf("%s\n", s.renderLog(l))
	}
	return nil
}

// show 查詢並輸出單一帳戶；查無帳戶時輸出錯誤。
func (s *Session) show(number int64) error {
	v, err := s.bank.Lookup(number)
	if err != nil {
		s.fail("lookup", err)
		return nil
	}
	s.printf("%s\n", s.render(v))
	return nil
}

// fail 輸出業務錯誤並記錄為 warn。
func (s *Session) fail(op string, err error) {
	s.log.Warn("operation rejected",
		zap.String("op", op),
		zap.String("reason", reason(err)),
		zap.Error(err))
	s.printf("%s\n", message(err))
}
