package bootstrap

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/vitrine-app/vitrine-api/internal/config"
	"github.com/vitrine-app/vitrine-api/internal/infra/airtable"
	"github.com/vitrine-app/vitrine-api/internal/infra/blob"
	"github.com/vitrine-app/vitrine-api/internal/infra/cache"
	"github.com/vitrine-app/vitrine-api/internal/infra/logger"
	"github.com/vitrine-app/vitrine-api/internal/infra/queue"
	"github.com/vitrine-app/vitrine-api/internal/modules/handler"
	"github.com/vitrine-app/vitrine-api/internal/modules/repo"
	"github.com/vitrine-app/vitrine-api/internal/modules/service"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// record store client
	do.Provide(inj, func(i *do.Injector) (*airtable.Client, error) {
		return airtable.NewClient(
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg), nil
	})
	do.Provide(inj, func(i *do.Injector) (*cache.UserCache, error) {
		cfg := do.MustInvoke[*config.Config](i)
		ttl := time.Duration(cfg.Auth.TokenTTLMin) * time.Minute
		return cache.NewUserCache(
			do.MustInvoke[*redis.Client](i),
			ttl,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*cache.Lock, error) {
		return cache.NewLock(do.MustInvoke[*redis.Client](i), 10*time.Second), nil
	})

	// RabbitMQ
	do.Provide(inj, func(i *do.Injector) (queue.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		if cfg.RabbitMQ.URL == "" {
			log.Warn("rabbitmq url not set, domain events disabled")
			return queue.Nop(), nil
		}
		conn, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			return nil, err
		}
		return queue.NewPublisher(conn, cfg, log)
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.Store, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewStore(context.Background(), cfg)
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(
			do.MustInvoke[*airtable.Client](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.CommentRepo, error) {
		return repo.NewCommentRepo(
			do.MustInvoke[*airtable.Client](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.LikeRepo, error) {
		return repo.NewLikeRepo(
			do.MustInvoke[*airtable.Client](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(
			do.MustInvoke[*airtable.Client](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.AuthService, error) {
		return service.NewAuthService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*cache.UserCache](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.LikeRepo](i),
			do.MustInvoke[*cache.Lock](i),
			do.MustInvoke[queue.Publisher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CommentService, error) {
		return service.NewCommentService(
			do.MustInvoke[repo.CommentRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[queue.Publisher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.UserService, error) {
		return service.NewUserService(do.MustInvoke[repo.UserRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.UploadService, error) {
		return service.NewUploadService(
			do.MustInvoke[*blob.Store](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(do.MustInvoke[service.AuthService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.CommentHandler, error) {
		return handler.NewCommentHandler(do.MustInvoke[service.CommentService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.UserHandler, error) {
		return handler.NewUserHandler(do.MustInvoke[service.UserService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.UploadHandler, error) {
		return handler.NewUploadHandler(do.MustInvoke[service.UploadService](i)), nil
	})

	return inj
}
