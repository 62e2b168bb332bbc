package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/david325345/animetoday/internal/middleware"
)

func main() {
	InitializeLogger()
	InitializeConfig()
	InitializeDatabase()
	InitializeServices()
	defer DB.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartBackgroundJobs(ctx)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(Logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Gzip())

	handler.RegisterRoutes(r)

	Logger.Infof("[App] starting HTTP server on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
