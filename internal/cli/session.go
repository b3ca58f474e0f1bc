// internal/cli/session.go
//
// Package cli
// ─────────────────────────────────────────────
// 提供終端機選單介面，作為 bank 模組的應用層 (Application Layer)。
// 每個畫面僅負責：
//  1. 讀取並解析使用者輸入（格式錯誤時重新詢問）
//  2. 呼叫 bank 層執行商業邏輯
//  3. 輸出結果或錯誤訊息
//
// 互動狀態全部收在 Session 內，由 main 建立後注入，沒有任何全域變數。
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bankofjoe/internal/bank"
	"bankofjoe/internal/config"
)

// errInputClosed 代表輸入已結束（EOF），選單應正常結束。
var errInputClosed = errors.New("input closed")

// Session 為一次選單互動：
// - bank：注入商業邏輯層。
// - in/out：輸入與輸出，測試時可替換為字串。
// - cfg：銀行名稱、幣別符號與預設每日額度。
type Session struct {
	bank *bank.Bank
	cfg  *config.Config
	in   *bufio.Scanner
	out  io.Writer
	log  *zap.Logger
	id   string
}

// NewSession 建立新的選單 session。
func NewSession(b *bank.Bank, cfg *config.Config, in io.Reader, out io.Writer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		bank: b,
		cfg:  cfg,
		in:   bufio.NewScanner(in),
		out:  out,
		log:  logger.With(zap.String("session", id)),
		id:   id,
	}
}

// ID 回傳 session 識別碼，與日誌中的 session 欄位相同。
func (s *Session) ID() string { return s.id }

// Run 執行選單迴圈，直到使用者選擇離開或輸入結束。
// 只有輸出或讀取失敗才會回傳錯誤。
func (s *Session) Run() error {
	s.log.Info("session started")
	defer s.log.Info("session ended")

	for {
		s.header(s.cfg.BankName)
		for _, item := range s.menu() {
			s.printf("%s) %s\n", item.key, item.title)
		}
		choice, err := s.readLine("\nChoose: ")
		if err != nil {
			return s.finish(err)
		}
		if choice == "0" {
			s.printf("\nGoodbye!\n")
			return nil
		}

		item, ok := s.lookupItem(choice)
		if !ok {
			s.printf("Invalid choice.\n")
			continue
		}
		if err := item.run(); err != nil {
			return s.finish(err)
		}
	}
}

func (s *Session) finish(err error) error {
	if errors.Is(err, errInputClosed) {
		s.printf("\nGoodbye!\n")
		return nil
	}
	return err
}

// ─────────────────────────────────────────────
// 輸入工具
// ─────────────────────────────────────────────

func (s *Session) readLine(prompt string) (string, error) {
	s.printf("%s", prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// readNumber 讀取帳號；格式錯誤時重新詢問。
func (s *Session) readNumber(prompt string) (int64, error) {
	for {
		raw, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			return n, nil
		}
		s.printf("Please enter a valid integer.\n")
	}
}

// readAmount 讀取金額；fallback 非 nil 時允許留白並使用該值。
// 正負號與是否為零交由 bank 層檢核。
func (s *Session) readAmount(prompt string, fallback *decimal.Decimal) (decimal.Decimal, error) {
	for {
		raw, err := s.readLine(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		if raw == "" && fallback != nil {
			return *fallback, nil
		}
		amt, err := decimal.NewFromString(raw)
		if err == nil {
			return amt, nil
		}
		s.printf("Please enter a valid number.\n")
	}
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *Session) header(title string) {
	line := strings.Repeat("_", 70)
	s.printf("\n%s\n%s\n%s\n", line, title, line)
}
