package services

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// TerminalPrompter 终端上的确认与提示
type TerminalPrompter struct {
	in          *bufio.Reader
	out         io.Writer
	autoConfirm bool
	mu          sync.Mutex
}

// NewTerminalPrompter autoConfirm为true时跳过确认
func NewTerminalPrompter(in io.Reader, out io.Writer, autoConfirm bool) *TerminalPrompter {
	return &TerminalPrompter{
		in:          bufio.NewReader(in),
		out:         out,
		autoConfirm: autoConfirm,
	}
}

// Confirm 输入 y 或 yes 时确认
func (p *TerminalPrompter) Confirm(message string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.out, message)
	if p.autoConfirm {
		fmt.Fprintln(p.out, "[y/N] y")
		return true
	}
	fmt.Fprint(p.out, "[y/N] ")
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// Alert 直接输出
func (p *TerminalPrompter) Alert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "⚠️ %s\n", message)
}
