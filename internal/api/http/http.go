package http

import (
	"undercover-local/internal/api/http/websocket"
	"undercover-local/internal/state"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

func NewApp(appState *state.AppState) *iris.Application {
	app := iris.Default()

	// 前端只是展示层，可以不部署
	if dir := appState.Cfg.StaticDir; dir != "" {
		app.HandleDir(
			"/",
			iris.Dir(dir),
			iris.DirOptions{
				IndexName: "index.html",
				SPA:       true,
				Compress:  true,
			},
		)
	}

	api := app.Party("/api/v1")

	api.Get("/game", GetGame(appState))

	api.Put("/game/settings", UpdateSettings(appState))
	api.Post("/game/settings/adjust", AdjustSettings(appState))

	api.Post("/game/round/start", StartRound(appState))
	api.Post("/game/round/finish", FinishRound(appState))
	api.Post("/game/round/reset", ResetRound(appState))

	api.Post("/game/reveal", Reveal(appState))
	api.Post("/game/advance", Advance(appState))
	api.Post("/game/advance/begin", BeginAdvance(appState))
	api.Post("/game/advance/complete", CompleteAdvance(appState))

	api.Post("/game/players/{id:int}/toggle", ToggleElimination(appState))

	api.Get("/ws", websocket.Connect(appState))

	return app
}

func RunServer(appState *state.AppState) error {
	app := NewApp(appState)

	addr := appState.Cfg.Addr()

	zap.L().Info("本地服务启动", zap.String("addr", addr))

	return app.Listen(addr)
}
