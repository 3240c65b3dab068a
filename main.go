package main

import (
	"context"

	"github.com/SirTebz/CommunityNoticeboard/config"
	"github.com/SirTebz/CommunityNoticeboard/routes"
	"github.com/SirTebz/CommunityNoticeboard/services"
	"github.com/SirTebz/CommunityNoticeboard/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db := config.InitDatabase(cfg)

	if cfg.SeedDemoData || len(cfg.AdminUsernames) > 0 {
		users := services.NewUserService(db, services.WithLogger(utils.Logger))
		opts := services.SeedOptions{AdminUsernames: cfg.AdminUsernames}
		if cfg.SeedDemoData {
			opts.AdminPassword = cfg.AdminPassword
			opts.UserPassword = cfg.DemoUserPassword
		}
		err := services.Seed(context.Background(), db, users, opts, services.WithLogger(utils.Logger))
		if err != nil {
			utils.Sugar.Fatalf("seeding failed: %v", err)
		}
	}

	r := routes.SetupRouter(db, cfg)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
