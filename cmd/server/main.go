package main

import (
	"context"
	"log"

	"github.com/bellari/data"
	"github.com/bellari/internal/config"
	"github.com/bellari/internal/db"
	"github.com/bellari/internal/router"
	"github.com/bellari/internal/service"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(db.Options{
		Driver: cfg.DBType,
		Path:   cfg.DatabasePath,
		DSN:    cfg.DatabaseURL,
	}); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	seed, err := service.ParseSeedContent(data.SeedContent)
	if err != nil {
		log.Fatalf("failed to parse seed content: %v", err)
	}

	if cfg.AutoInit {
		result, err := service.NewSeeder(db.DB, seed, cfg.AdminInitAllowed).Seed(context.Background())
		if err != nil {
			log.Fatalf("failed to seed default content: %v", err)
		}
		if !result.Skipped {
			log.Printf("seeded default content: %d pages, %d sections, %d settings", result.Pages, result.Sections, result.Settings)
		}
	}

	created, err := service.NewAuthService(db.DB).EnsureUser(cfg.AdminUsername, cfg.AdminPassword)
	switch {
	case err != nil:
		log.Printf("admin account not created: %v", err)
	case created:
		log.Printf("created admin account %s", cfg.AdminUsername)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(db.DB, router.Options{
		SessionSecret:    cfg.SessionSecret,
		TemplateDir:      cfg.TemplateDir,
		StaticDir:        cfg.StaticDir,
		UploadDir:        cfg.UploadDir,
		UploadURL:        cfg.UploadURLPath,
		MaxUploadBytes:   cfg.MaxUploadBytes,
		AdminInitAllowed: cfg.AdminInitAllowed,
		AdminUsername:    cfg.AdminUsername,
		AdminPassword:    cfg.AdminPassword,
		SiteBaseURL:      cfg.SiteBaseURL,
		Seed:             seed,
	})
	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
