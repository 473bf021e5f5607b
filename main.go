package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"spendbot/bot"
	"spendbot/bot/telegram"
	"spendbot/config"
	"spendbot/database"
	"spendbot/middleware"
	"spendbot/router"
	"spendbot/service"
	"spendbot/tokens"
)

// @title SpendBot API
// @version 1.0
// @description 聊天记账机器人的仪表盘接口：令牌发放、PIN 校验、聚合数据与导出
// @host localhost:8080
// @BasePath /

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("SpendBot v1.0.0")
		return
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		// 自动添加冒号前缀
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	// 打印配置信息
	config.PrintConfig()

	// 初始化数据库
	if err := database.Init(cfg); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	// 初始化 JWT
	middleware.InitJWT(cfg)

	store := tokens.NewGormStore(database.DB)

	var mail *service.EmailService
	if cfg.Email.Enabled {
		mail = service.NewEmailService(&cfg.Email)
	}

	executor := bot.NewExecutor(database.DB, cfg, store, mail)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telegram 接入端（可选）
	if cfg.Telegram.Enabled {
		tgBot, err := telegram.New(&cfg.Telegram, executor)
		if err != nil {
			log.Fatalf("初始化 telegram bot 失败: %v", err)
		}
		go func() {
			if err := tgBot.Start(ctx); err != nil {
				log.Printf("telegram bot 退出: %v", err)
			}
		}()
	}

	// 设置路由
	r := router.SetupRouter(cfg, store)

	// 启动服务器
	log.Printf("==========================================")
	log.Printf("  💰 SpendBot 已启动")
	log.Printf("==========================================")
	log.Printf("  仪表盘:  %s/", cfg.Server.BaseURL)
	log.Printf("  Swagger: http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("  API接口: http://localhost%s/api/", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
