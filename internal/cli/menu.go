// internal/cli/menu.go
//
// 本檔負責選單項目與畫面的對應，與 screens.go 分離：
//   - screens.go 定義「每個畫面如何處理」
//   - menu.go 定義「選項如何被導向」

package cli

type menuItem struct {
	key   string
	title string
	run   func() error
}

// menu 回傳選單項目，順序即顯示順序；"0" 離開由 Run 處理。
func (s *Session) menu() []menuItem {
	return []menuItem{
		{"1", "Open account", s.openAccount},
		{"2", "Close account", s.closeAccount},
		{"3", "Deposit", s.deposit},
		{"4", "Withdraw", s.withdraw},
		{"5", "Apply interest", s.applyInterest},
		{"6", "Transfer", s.transfer},
		{"7", "Lookup account", s.lookup},
		{"8", "List all accounts", s.list},
		{"9", "Transaction history", s.history},
		{"0", "Exit", nil},
	}
}

func (s *Session) lookupItem(key string) (menuItem, bool) {
	for _, item := range s.menu() {
		if item.key == key && item.run != nil {
			return item, true
		}
	}
	return menuItem{}, false
}
