package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/chart"
	"github.com/life2you_mini/tradedash/internal/config"
	"github.com/life2you_mini/tradedash/internal/logger"
	"github.com/life2you_mini/tradedash/internal/services"
)

var (
	configFile   = flag.String("config", "config/config.yaml", "配置文件路径")
	viewFlag     = flag.String("view", "spot", "页面: spot, bybit, history, settings, logs, chart, login, logout")
	exchangeFlag = flag.String("exchange", "", "交易所: upbit 或 bybit，默认沿用上次的选择")
	modeFlag     = flag.String("mode", "", "交易模式: simulation 或 real，默认使用配置")
	emailFlag    = flag.String("email", "", "登录邮箱")
	passwordFlag = flag.String("password", "", "登录密码，也可以用 TRADEDASH_PASSWORD 环境变量")
	tradeFlag    = flag.Int64("trade", 0, "chart页面: 成交ID")
	positionFlag = flag.Int64("position", 0, "chart页面: 持仓ID")
	actionFlag   = flag.String("action", "", "执行一次命令: start, stop, panic-sell, sell:KRW-BTC, close:12")
	yesFlag      = flag.Bool("yes", false, "跳过确认")
)

func main() {
	// 解析命令行参数
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	if *modeFlag != "" {
		switch *modeFlag {
		case "simulation", "real":
			cfg.Dashboard.DefaultMode = *modeFlag
		default:
			fmt.Printf("未知的交易模式: %s\n", *modeFlag)
			os.Exit(2)
		}
	}

	// 初始化日志
	log, err := initLogger(cfg)
	if err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()
	log.Info("加载配置成功", zap.String("配置文件", *configFile))

	// 创建上下文，用于处理信号
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 设置信号处理
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	// 创建服务
	prompter := services.NewTerminalPrompter(os.Stdin, os.Stdout, *yesFlag)
	service, err := services.NewDashboardService(ctx, cfg, prompter, os.Stdout, log.Logger)
	if err != nil {
		log.Fatal("创建服务失败", zap.Error(err))
	}

	code := run(ctx, service, log.Logger, signalChan)

	// 创建关闭超时上下文
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// 停止服务
	if err := service.Stop(shutdownCtx); err != nil {
		log.Error("服务关闭失败", zap.Error(err))
		code = 1
	}
	if code != 0 {
		log.Close()
		os.Exit(code)
	}
}

func run(ctx context.Context, service *services.DashboardService, log *zap.Logger, signalChan <-chan os.Signal) int {
	view := services.View(*viewFlag)

	switch view {
	case services.ViewLogin:
		password := *passwordFlag
		if password == "" {
			password = os.Getenv("TRADEDASH_PASSWORD")
		}
		user, err := service.Login(ctx, *emailFlag, password)
		if err != nil {
			log.Error("登录失败", zap.Error(err))
			return 1
		}
		fmt.Printf("로그인: %s\n", user.Email)
		return 0

	case services.ViewLogout:
		if err := service.Logout(ctx); err != nil {
			log.Error("登出失败", zap.Error(err))
			return 1
		}
		return 0

	case services.ViewChart:
		target := chart.Target{Kind: chart.KindTrade, ID: *tradeFlag}
		if *positionFlag > 0 {
			target = chart.Target{Kind: chart.KindPosition, ID: *positionFlag}
		}
		if target.ID <= 0 {
			log.Error("chart页面需要 -trade 或 -position")
			return 2
		}
		if _, err := service.OpenChart(ctx, target); err != nil {
			log.Error("打开图表失败", zap.Error(err))
			return 1
		}
		return 0
	}

	ex, err := service.SelectExchange(ctx, *exchangeFlag)
	if err != nil {
		log.Error("选择交易所失败", zap.Error(err))
		return 2
	}

	if *actionFlag != "" {
		if err := service.RunAction(ctx, ex, *actionFlag); err != nil {
			log.Error("命令执行失败", zap.String("action", *actionFlag), zap.Error(err))
			return 1
		}
		return 0
	}

	if err := service.Start(view, ex); err != nil {
		if errors.Is(err, services.ErrLoginRequired) {
			fmt.Println("로그인이 필요합니다: -view login -email <email>")
		}
		log.Error("启动看板失败", zap.Error(err))
		return 1
	}
	log.Info("看板已启动")

	// 等待终止信号或会话失效
	select {
	case sig := <-signalChan:
		log.Info("接收到信号，准备关闭服务", zap.String("signal", sig.String()))
	case <-service.LoginRequired():
		fmt.Println("세션이 만료되었습니다. 다시 로그인해주세요.")
		return 1
	}
	return 0
}

// 初始化日志，日志目录不可用时退回控制台输出
func initLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.NewLogger(cfg.System.LogDir, cfg.System.LogLevel)
	if err == nil {
		return l, nil
	}
	fmt.Printf("日志目录不可用，使用控制台日志: %v\n", err)
	return logger.NewDevelopment()
}
