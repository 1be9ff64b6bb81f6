package dashboard

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/life2you_mini/tradedash/internal/exchange"
	"github.com/life2you_mini/tradedash/internal/model"
)

// Render 把视图快照以表格形式写出
func Render(w io.Writer, snapshot interface{}) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	switch s := snapshot.(type) {
	case SpotSnapshot:
		renderSpot(tw, &s)
	case *SpotSnapshot:
		renderSpot(tw, s)
	case DerivSnapshot:
		renderDeriv(tw, &s)
	case *DerivSnapshot:
		renderDeriv(tw, s)
	case HistorySnapshot:
		renderHistory(tw, &s)
	case *HistorySnapshot:
		renderHistory(tw, s)
	case SettingsSnapshot:
		renderSettings(tw, &s)
	case *SettingsSnapshot:
		renderSettings(tw, s)
	case []model.SystemLogEntry:
		renderLogs(tw, s, model.ExchangeUpbit)
	default:
		return fmt.Errorf("不支持的快照类型: %T", snapshot)
	}
	return tw.Flush()
}

func runningText(running bool) string {
	if running {
		return "실행 중"
	}
	return "정지"
}

func renderSpot(w io.Writer, s *SpotSnapshot) {
	profile := exchange.Upbit()
	fmt.Fprintf(w, "Upbit\t%s\t봇: %s\n", ModeLabel(s.Mode), runningText(s.Running))

	if p := s.Portfolio; p != nil {
		fmt.Fprintf(w, "총 자산\t%s\tKRW 잔고\t%s\n", profile.FormatMoney(p.TotalAssetValue), profile.FormatMoney(p.KRWBalance))
		fmt.Fprintf(w, "오늘 손익\t%s\t%s\n", profile.FormatSignedMoney(p.TodayPnL), exchange.FormatPercent(&p.TodayPnLPercent))
		fmt.Fprintf(w, "미실현 손익\t%s\n", profile.FormatSignedMoney(s.UnrealizedPnL))
	}
	if r := s.Returns; r != nil {
		fmt.Fprintf(w, "%d일 수익\t%s\t%s\t거래 %d건\n", s.PeriodDays, profile.FormatSignedMoney(r.TotalPnL), exchange.FormatPercent(&r.PnLPercent), r.TradeCount)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "코인\t평균 매수가\t현재가\t수익률\t출처")
	if s.Portfolio != nil {
		for _, h := range s.Portfolio.Positions {
			current := "-"
			if h.CurrentPrice != nil {
				current = profile.FormatMoney(*h.CurrentPrice)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				profile.DisplayCoin(h.Coin),
				profile.FormatMoney(h.AvgBuyPrice),
				current,
				exchange.FormatPercent(h.UnrealizedPnLPercent),
				h.Source)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "감시 종목\t%s\n", s.UpdatedAt)
	for _, c := range s.Whitelist {
		price := "-"
		if c.CurrentPrice != nil {
			price = profile.FormatMoney(*c.CurrentPrice)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", profile.DisplayCoin(c.Market), c.KoreanName, price, exchange.FormatPercent(c.ChangeRate), c.Status)
	}

	fmt.Fprintln(w)
	renderLogs(w, s.Logs, model.ExchangeUpbit)
	renderErrors(w, s.Errors)
}

func renderDeriv(w io.Writer, s *DerivSnapshot) {
	profile := exchange.Bybit()
	fmt.Fprintf(w, "Bybit\t%s\t봇: %s\n", ModeLabel(s.Mode), runningText(s.Running))

	if p := s.Portfolio; p != nil {
		fmt.Fprintf(w, "총 자산\t%s\tUSDT 잔고\t%s\n", profile.FormatMoney(p.TotalAssetValue), profile.FormatMoney(p.USDTBalance))
		fmt.Fprintf(w, "미실현 손익\t%s\t롱 %d\t숏 %d\n", profile.FormatSignedMoney(s.UnrealizedPnL), s.LongCount, s.ShortCount)
	}
	if r := s.Returns; r != nil {
		fmt.Fprintf(w, "%d일 수익\t%s\t실현 %s\t미실현 %s\n", s.PeriodDays,
			profile.FormatSignedMoney(r.TotalPnL),
			profile.FormatSignedMoney(r.RealizedPnL),
			profile.FormatSignedMoney(r.UnrealizedPnL))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "ID\t심볼\t방향\t진입가\t현재가\t레버리지\t미실현\t청산가")
	if s.Portfolio != nil {
		for _, p := range s.Portfolio.Positions {
			direction := "롱"
			if p.Side == model.DirectionShort {
				direction = "숏"
			}
			liq := "-"
			if p.LiquidationPrice != nil {
				liq = profile.FormatMoney(*p.LiquidationPrice)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%gx\t%s\t%s\n",
				p.ID, p.Symbol, direction,
				profile.FormatMoney(p.EntryPrice),
				profile.FormatMoney(p.CurrentPrice),
				p.Leverage,
				profile.FormatSignedMoney(p.UnrealizedPnL),
				liq)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "감시 종목\t%s\n", s.UpdatedAt)
	for _, c := range s.Whitelist {
		fmt.Fprintf(w, "%d\t%s\t%s\t%+.2f%%\t%.4f%%\t%s\n", c.Rank, c.Symbol, profile.FormatMoney(c.CurrentPrice), c.Change24h, c.FundingRate*100, c.Status)
	}

	fmt.Fprintln(w)
	renderLogs(w, s.Logs, model.ExchangeBybit)
	renderErrors(w, s.Errors)
}

func renderHistory(w io.Writer, s *HistorySnapshot) {
	fmt.Fprintf(w, "%s 거래 내역\t%s\n", strings.ToUpper(string(s.Exchange)), s.Range())
	if c := s.Chart; c != nil {
		fmt.Fprintf(w, "누적 수익률\t%+.2f%%\t거래 %d건\n", c.TotalReturnPercent, c.TotalTrades)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "시간\t모드\t코인\t전략\t구분\t가격\t손익\t수익률\t사유")
	for _, r := range s.Rows {
		reasonText := "-"
		if r.Reason.HasReason() {
			reasonText = strings.TrimSpace(r.Reason.Emoji + " " + r.Reason.Label)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt, ModeLabel(r.Mode), r.Coin, r.Strategy, r.Side, r.Price, r.PnL, r.PnLPercent, reasonText)
	}
	renderErrors(w, s.Errors)
}

func renderSettings(w io.Writer, s *SettingsSnapshot) {
	if sp := s.Spot; sp != nil {
		fmt.Fprintf(w, "Upbit API\t%s\n", configured(sp.UpbitAccessKey != ""))
		fmt.Fprintf(w, "Telegram\t%s\n", configured(sp.TelegramEnabled))
		fmt.Fprintf(w, "Hard cap\t%.0f%%\n", sp.HardCapRatio*100)
		renderStrategies(w, sp.StrategySettings)
	}
	if d := s.Deriv; d != nil {
		fmt.Fprintf(w, "Bybit API\t%s\n", configured(d.APIConfigured))
		fmt.Fprintf(w, "레버리지\t%gx\n", d.Leverage)
		renderStrategies(w, d.StrategySettings)
	}
	renderErrors(w, s.Errors)
}

func configured(ok bool) string {
	if ok {
		return "설정됨"
	}
	return "미설정"
}

func renderStrategies(w io.Writer, strategies map[string]model.StrategyConfig) {
	keys := make([]string, 0, len(strategies))
	for k := range strategies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cfg := strategies[k]
		state := "OFF"
		if cfg.Enabled {
			state = "ON"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", cfg.Name, cfg.Timeframe, state)
	}
}

func renderLogs(w io.Writer, logs []model.SystemLogEntry, ex model.Exchange) {
	for _, l := range logs {
		marker := " "
		switch LogTone(l.Message, ex) {
		case ToneBuy:
			marker = "+"
		case ToneSell:
			marker = "-"
		case ToneAnalysis:
			marker = "*"
		case ToneWatchlist:
			marker = "~"
		case ToneFunding:
			marker = "$"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, l.CreatedAt, l.Level, l.Message)
	}
}

func renderErrors(w io.Writer, errs map[string]string) {
	if len(errs) == 0 {
		return
	}
	panels := make([]string, 0, len(errs))
	for p := range errs {
		panels = append(panels, p)
	}
	sort.Strings(panels)
	fmt.Fprintln(w)
	for _, p := range panels {
		fmt.Fprintf(w, "! %s\t%s\n", p, errs[p])
	}
}

// RenderLogs 日志流的输出，交易所决定关键字
func RenderLogs(w io.Writer, logs []model.SystemLogEntry, ex model.Exchange) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	renderLogs(tw, logs, ex)
	return tw.Flush()
}
