package graphapi

import (
	"github.com/orgball2608/insta-dashboard/internal/instagram"
	"go.uber.org/fx"
)

var Module = fx.Provide(
	fx.Annotate(
		New,
		fx.As(new(instagram.Client)),
	),
)
