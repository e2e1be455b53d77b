package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/creatorpulse/creatorpulse/internal/account"
	"github.com/creatorpulse/creatorpulse/internal/activity"
	"github.com/creatorpulse/creatorpulse/internal/clock"
	"github.com/creatorpulse/creatorpulse/internal/config"
	"github.com/creatorpulse/creatorpulse/internal/logger"
	"github.com/creatorpulse/creatorpulse/internal/migration"
	obsmetrics "github.com/creatorpulse/creatorpulse/internal/observability/metrics"
	"github.com/creatorpulse/creatorpulse/internal/platform"
	"github.com/creatorpulse/creatorpulse/internal/ratelimit"
	"github.com/creatorpulse/creatorpulse/internal/rollup"
	"github.com/creatorpulse/creatorpulse/internal/server"
	"github.com/creatorpulse/creatorpulse/internal/social"
	"github.com/creatorpulse/creatorpulse/internal/syncer"
	"github.com/creatorpulse/creatorpulse/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		obsmetrics.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		account.Module,
		social.Module,
		activity.Module,
		platform.Module,
		ratelimit.Module,
		rollup.Module,
		syncer.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
