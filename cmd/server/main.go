package main

import (
	"flag"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/praveen-raj-m/compliance-ai/internal/config"
	"github.com/praveen-raj-m/compliance-ai/internal/handlers/api"
	"github.com/praveen-raj-m/compliance-ai/internal/logger"
	"github.com/praveen-raj-m/compliance-ai/internal/routing"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger.Init(*debug)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("loading config", "path", *configPath, "err", err)
		panic(err)
	}

	handler, err := api.NewHandler(cfg)
	if err != nil {
		logger.Error("initializing pipeline", "err", err)
		panic(err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.Server.FrontendOrigin},
		AllowMethods:     []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	routing.InitRoutes(e, handler)

	logger.Info("starting server", "addr", cfg.Server.Addr)
	e.Logger.Fatal(e.Start(cfg.Server.Addr))
}
