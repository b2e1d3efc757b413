package fx

import (
	"github.com/orgball2608/insta-dashboard/internal/repositories/publication"
	"go.uber.org/fx"
)

var Module = fx.Options(
	publication.Module,
)
