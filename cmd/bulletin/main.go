package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	fiberadapter "github.com/okondo/bulletin/adapters/fiber"
	pgxadapter "github.com/okondo/bulletin/adapters/pgx"
	"github.com/okondo/bulletin/config"
	"github.com/okondo/bulletin/core"
	"github.com/okondo/bulletin/crypto"
	"github.com/okondo/bulletin/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config.Load: %v", err)
	}

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("pgxpool.New: %v", err)
	}
	defer pool.Close()

	hasher, err := crypto.NewBcrypt(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("crypto.NewBcrypt: %v", err)
	}

	var mail core.Mailer
	if cfg.MailDriver == "postmark" {
		mail, err = mailer.NewPostmark(mailer.PostmarkConfig{
			ServerToken:  cfg.PostmarkServerToken,
			AccountToken: cfg.PostmarkAccountToken,
			SenderEmail:  cfg.SenderEmail,
		})
		if err != nil {
			log.Fatalf("mailer.NewPostmark: %v", err)
		}
	} else {
		mail = mailer.NewDev(slogger)
	}

	storage := pgxadapter.New(pool)

	auth := core.NewAuthService(storage, mail, hasher, core.AuthConfig{
		TokenSecret: cfg.TokenSecret,
		CodeSecret:  cfg.CodeSecret,
	}, slogger)
	posts := core.NewPostService(storage, slogger)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New())

	api := fiberadapter.New(app, auth, posts, fiberadapter.Options{
		TokenSecret:   cfg.TokenSecret,
		SecureCookies: cfg.Production(),
		Logger:        slogger,
	})
	api.RegisterRoutes()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("app.Listen: %v", err)
	}
}
