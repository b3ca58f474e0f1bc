// Package scheduler 以 cron 排程定期對所有帳戶計息。
// 未設定排程時不會建立，選單中的「計息」仍可手動逐戶入帳。
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Poster 為排程計息所需的最小介面，由 *bank.Bank 實作。
type Poster interface {
	ApplyInterestAll(rate decimal.Decimal) (decimal.Decimal, error)
}

// InterestScheduler manages the interest posting cron job.
type InterestScheduler struct {
	cron     *cron.Cron
	bank     Poster
	rate     decimal.Decimal
	schedule string
	logger   *zap.Logger
}

// NewInterestScheduler creates a new scheduler instance.
func NewInterestScheduler(bank Poster, schedule string, rate decimal.Decimal, logger *zap.Logger) *InterestScheduler {
	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &InterestScheduler{
		cron:     c,
		bank:     bank,
		rate:     rate,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the interest job and starts the cron scheduler.
func (s *InterestScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.PostInterest); err != nil {
		return fmt.Errorf("schedule interest job %q: %w", s.schedule, err)
	}
	s.logger.Info("scheduled interest job",
		zap.String("schedule", s.schedule),
		zap.String("rate", s.rate.String()))
	s.cron.Start()
	return nil
}

// PostInterest 執行一次全行計息；失敗只記錄，不中斷排程。
func (s *InterestScheduler) PostInterest() {
	total, err := s.bank.ApplyInterestAll(s.rate)
	if err != nil {
		s.logger.Error("interest posting failed", zap.Error(err))
		return
	}
	s.logger.Info("interest posting finished", zap.String("total", total.StringFixed(2)))
}

// Stop gracefully stops the cron scheduler.
func (s *InterestScheduler) Stop() context.Context {
	return s.cron.Stop()
}
