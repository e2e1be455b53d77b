package migration

import (
	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
	activitydomain "github.com/creatorpulse/creatorpulse/internal/activity/domain"
	"github.com/creatorpulse/creatorpulse/internal/config"
	rollupdomain "github.com/creatorpulse/creatorpulse/internal/rollup/domain"
	socialdomain "github.com/creatorpulse/creatorpulse/internal/social/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// sqlite and mysql are dev/test targets; let gorm build the schema.
			return conn.AutoMigrate(
				&accountdomain.Account{},
				&socialdomain.SocialProfile{},
				&socialdomain.SocialPost{},
				&activitydomain.ActivityEvent{},
				&rollupdomain.DailyMetric{},
				&rollupdomain.LifetimeMetric{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
