// cmd/bank/main.go

// Bank of Joe：單一程序、純記憶體的銀行帳戶模擬器。
// 此檔案負責初始化各模組（config, logger, bank, scheduler, cli），
// 並在終端機上執行選單；程式結束後所有狀態即消失。

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"bankofjoe/internal/bank"
	"bankofjoe/internal/cli"
	"bankofjoe/internal/config"
	"bankofjoe/internal/logger"
	"bankofjoe/internal/scheduler"
)

func main() {
	// 本機開發時可用 .env 覆寫設定；找不到檔案時直接使用環境變數
	_ = godotenv.Load()

	// Ctrl+C / SIGTERM 取消 ctx，由 run 道別並正常收尾
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Stdin, os.Stdout)
	stop()
	os.Exit(code)
}

// run 組裝並執行整個程式，回傳結束碼。
// 所有 defer（排程停止、logger flush）都在回傳前執行完畢，os.Exit 只在 main 呼叫。
func run(ctx context.Context, in io.Reader, out io.Writer) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("cannot load config: %v", err)
		return 1
	}

	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Printf("cannot build logger: %v", err)
		return 1
	}
	defer func() { _ = lg.Sync() }()

	// 初始化銀行核心模組
	b := bank.NewBank(
		bank.WithStartNumber(cfg.StartNumber),
		bank.WithLogger(lg.Named("bank")),
	)

	// 排程計息（未設定排程或利率為零時不啟用）
	if cfg.InterestEnabled() {
		s := scheduler.NewInterestScheduler(b, cfg.InterestSchedule, cfg.InterestRate, lg.Named("scheduler"))
		if err := s.Start(); err != nil {
			lg.Error("failed to start interest scheduler", zap.Error(err))
			return 1
		}
		defer func() { <-s.Stop().Done() }()
	}

	// 選單在背景讀取輸入；收到中斷訊號時不等待阻塞中的讀取
	session := cli.NewSession(b, cfg, in, out, lg.Named("cli"))
	done := make(chan error, 1)
	go func() { done <- session.Run() }()

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(out, "\nGoodbye!")
		lg.Info("interrupted", zap.String("session", session.ID()))
		return 0
	case err := <-done:
		if err != nil {
			lg.Error("session aborted", zap.Error(err))
			return 1
		}
		return 0
	}
}
