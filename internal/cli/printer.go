package cli

import (
	"fmt"
	"strings"
	"time"
)

const (
	SymbolPass    = "✓"
	SymbolFail    = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"

	Indent = "  "
)

func Section(title string) {
	fmt.Printf("\n━━ %s ━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n", title)
}

func Infof(format string, args ...any) {
	fmt.Printf("%s%s %s\n", Indent, SymbolInfo, fmt.Sprintf(format, args...))
}

func Successf(format string, args ...any) {
	fmt.Printf("%s%s %s\n", Indent, SymbolPass, fmt.Sprintf(format, args...))
}

func Failf(format string, args ...any) {
	fmt.Printf("%s%s %s\n", Indent, SymbolFail, fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...any) {
	fmt.Printf("%s%s %s\n", Indent, SymbolWarning, fmt.Sprintf(format, args...))
}

func Linef(format string, args ...any) {
	fmt.Printf("%s%s\n", Indent, fmt.Sprintf(format, args...))
}

func KeyValue(key, value string) {
	fmt.Printf("%s%-38s %s\n", Indent, key+":", value)
}

func Blank() {
	fmt.Println()
}

func Rule() {
	fmt.Printf("%s%s\n", Indent, strings.Repeat("─", 62))
}

func CapacityTableHeader() {
	fmt.Printf("%s%-12s  %-6s  %10s  %10s  %8s\n", Indent, "Concurrency", "Pass", "RPS", "P99 (s)", "Rate")
	fmt.Printf("%s%s\n", Indent, strings.Repeat("─", 56))
}

func CapacityTableRow(concurrency int, passed bool, rps, p99Seconds, successRate float64) {
	symbol := SymbolPass
	if !passed {
		symbol = SymbolFail
	}
	fmt.Printf("%s%-12d  %-6s  %10.2f  %10.2f  %7.1f%%\n", Indent, concurrency, symbol, rps, p99Seconds, successRate*100)
}

func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
