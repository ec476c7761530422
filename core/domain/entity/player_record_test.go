package entity

import "testing"

func TestWinRate(t *testing.T) {
	tests := []struct {
		name   string
		played int
		won    int
		want   string
	}{
		{"未打过", 0, 0, "0"},
		{"全胜", 4, 4, "100.00"},
		{"三分之一", 3, 1, "33.33"},
		{"零胜", 5, 0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PlayerRecord{GamesPlayed: tt.played, GamesWon: tt.won}
			if got := p.WinRate(); got != tt.want {
				t.Errorf("WinRate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewPlayerRecord(t *testing.T) {
	p := NewPlayerRecord("alice")

	if p.Username != "alice" {
		t.Errorf("用户名应为 alice，实际 %q", p.Username)
	}
	if p.ID.IsZero() {
		t.Errorf("应生成 ObjectID")
	}
	if p.GamesPlayed != 0 || p.GamesWon != 0 {
		t.Errorf("新玩家战绩应为零")
	}
	if p.CreatedAt.IsZero() {
		t.Errorf("应记录创建时间")
	}
}
