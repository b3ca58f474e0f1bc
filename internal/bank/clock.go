// internal/bank/clock.go

package bank

import (
	"fmt"
	"time"
)

// Clock 提供「目前時間」，讓換日判斷不直接依賴系統時鐘，方便測試注入。
type Clock interface {
	Now() time.Time
}

// ClockFunc 讓一般函式可直接當作 Clock 使用。
type ClockFunc func() time.Time

// Now 實作 Clock。
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock 讀取本機系統時間。
type SystemClock struct{}

// Now 實作 Clock。
func (SystemClock) Now() time.Time { return time.Now() }

// Day 為不含時間的日曆日，可直接以 == 比較。
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf 取 t 在其所屬時區下的日曆日。
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// IsZero 回報是否為尚未設定的零值。
func (d Day) IsZero() bool { return d == Day{} }

func (d Day) String() string {
	if d.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
