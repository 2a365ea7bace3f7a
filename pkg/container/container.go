package container

import (
	"context"
	"fmt"

	"bookshelf-api/internal/config"
	infraCache "bookshelf-api/internal/infrastructure/cache"
	"bookshelf-api/internal/infrastructure/database"
	"bookshelf-api/pkg/cache"
	"bookshelf-api/pkg/token"

	"bookshelf-api/internal/domains/auth"
	authHandler "bookshelf-api/internal/domains/auth/handler"
	authRepo "bookshelf-api/internal/domains/auth/repository"
	authService "bookshelf-api/internal/domains/auth/service"

	"bookshelf-api/internal/domains/book"
	bookHandler "bookshelf-api/internal/domains/book/handler"
	bookRepo "bookshelf-api/internal/domains/book/repository"
	bookService "bookshelf-api/internal/domains/book/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton, built once at startup in dependency order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache
	Codec  *token.Codec

	AuthRepo    auth.Repository
	AuthService auth.Service
	AuthHandler *authHandler.AuthHandler

	BookRepo    book.Repository
	BookService book.Service
	BookHandler *bookHandler.BookHandler
}

func New(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	redisCache := infraCache.NewRedisCache(&cfg.Redis)
	if err := redisCache.Connect(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	c := &Container{
		Config: cfg,
		DB:     db,
		Cache:  redisCache,
		Codec:  token.NewCodec(cfg.JWT.Secret, cfg.JWT.TTL),
	}

	c.AuthRepo = authRepo.NewPostgresRepository(db.Pool)
	c.AuthService = authService.NewAuthService(c.AuthRepo, c.Codec)
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService)

	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.BookService = bookService.NewBookService(c.BookRepo)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)

	return c, nil
}

// Close releases infrastructure resources in reverse order.
func (c *Container) Close() {
	if redisCache, ok := c.Cache.(*infraCache.RedisCache); ok {
		_ = redisCache.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
