package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalPrompter_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		auto  bool
		want  bool
	}{
		{name: "输入y", input: "y\n", want: true},
		{name: "输入YES", input: " YES \n", want: true},
		{name: "直接回车", input: "\n", want: false},
		{name: "输入n", input: "n\n", want: false},
		{name: "没有输入", input: "", want: false},
		{name: "自动确认", input: "", auto: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewTerminalPrompter(strings.NewReader(tt.input), &out, tt.auto)
			assert.Equal(t, tt.want, p.Confirm("⚠️ 긴급 매도 확인"))
			assert.Contains(t, out.String(), "긴급 매도 확인")
		})
	}
}

func TestTerminalPrompter_Alert(t *testing.T) {
	var out bytes.Buffer
	p := NewTerminalPrompter(strings.NewReader(""), &out, false)
	p.Alert("청산 실패: boom")
	assert.Equal(t, "⚠️ 청산 실패: boom\n", out.String())
}
