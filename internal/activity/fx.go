package activity

import (
	activitydomain "github.com/creatorpulse/creatorpulse/internal/activity/domain"
	"github.com/creatorpulse/creatorpulse/internal/activity/service"
	platformdomain "github.com/creatorpulse/creatorpulse/internal/platform/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("activity.service",
	fx.Provide(
		service.New,
		func(s *service.Service) activitydomain.Service { return s },
		func(s *service.Service) platformdomain.Recorder { return s },
	),
)
