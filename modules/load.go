package modules

import (
	"github.com/iota-uz/authgate/modules/core"
	"github.com/iota-uz/authgate/pkg/application"
)

var BuiltInModules = []application.Module{
	core.NewModule(nil),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
