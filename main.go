package main

import (
	"undercover-local/internal/api/http"
	"undercover-local/internal/config"
	"undercover-local/internal/logger"
	"undercover-local/internal/service"
	"undercover-local/internal/state"

	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg := config.InitConfig()

	// 初始化日志器
	logger.InitLogger(cfg.LogLevel)
	defer zap.L().Sync()

	// 创建游戏服务
	gameSvc, err := service.NewGameService(cfg)
	if err != nil {
		zap.L().Fatal("创建游戏服务失败", zap.Error(err))
	}
	defer gameSvc.Close()

	// 组装应用状态
	appState := state.NewAppState(cfg, gameSvc)

	// 启动服务器
	if err := http.RunServer(appState); err != nil {
		zap.L().Error("服务器退出", zap.Error(err))
	}
}
