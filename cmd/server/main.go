package main

//	@title			Vitrine API
//	@version		1.0
//	@description	Backend for the student project showcase.
//	@schemes		http https
//	@BasePath		/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session bearer token (e.g., "Bearer eyJhbGciOi...")

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/vitrine-app/vitrine-api/internal/bootstrap"
	"github.com/vitrine-app/vitrine-api/internal/config"
	"github.com/vitrine-app/vitrine-api/internal/modules/handler"
	"github.com/vitrine-app/vitrine-api/internal/modules/service"
	"github.com/vitrine-app/vitrine-api/internal/router"
)

func main() {
	// local development convenience; real deployments set the
	// environment directly
	_ = godotenv.Load()

	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)

	gin.SetMode(cfg.App.Env)

	engine := router.NewRouter(router.RouterDeps{
		Config:         cfg,
		Log:            log,
		Auth:           do.MustInvoke[service.AuthService](inj),
		AuthHandler:    do.MustInvoke[*handler.AuthHandler](inj),
		ProjectHandler: do.MustInvoke[*handler.ProjectHandler](inj),
		CommentHandler: do.MustInvoke[*handler.CommentHandler](inj),
		UserHandler:    do.MustInvoke[*handler.UserHandler](inj),
		UploadHandler:  do.MustInvoke[*handler.UploadHandler](inj),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	log.Sugar().Info("server exited")
}
