package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bellari/internal/config"
	"github.com/bellari/internal/db"
	"github.com/bellari/internal/service"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	username := flag.String("username", cfg.AdminUsername, "admin username (defaults to ADMIN_USERNAME)")
	password := flag.String("password", cfg.AdminPassword, "admin password (defaults to ADMIN_PASSWORD)")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "username and password are required: set ADMIN_USERNAME/ADMIN_PASSWORD or pass -username/-password")
		os.Exit(2)
	}

	// 初始化数据库
	if err := db.Init(db.Options{Driver: cfg.DBType, Path: cfg.DatabasePath, DSN: cfg.DatabaseURL}); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	created, err := service.NewAuthService(db.DB).EnsureUser(*username, *password)
	if err != nil {
		log.Fatal("创建用户失败:", err)
	}
	if !created {
		fmt.Printf("用户 %s 已存在，无需初始化\n", *username)
		return
	}
	fmt.Printf("管理员用户 %s 创建成功\n", *username)
}
