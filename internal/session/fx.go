package session

import (
	"github.com/orgball2608/insta-dashboard/internal/publish"
	"go.uber.org/fx"
)

var Module = fx.Provide(
	fx.Annotate(
		New,
		fx.As(fx.Self()),
		fx.As(new(publish.FeedResetter)),
	),
)
