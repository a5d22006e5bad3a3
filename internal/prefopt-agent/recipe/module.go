package recipe_agent

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/prefopt-project/prefopt/pkg/afero"
	"github.com/prefopt-project/prefopt/pkg/logging"
)

type recipeAgentParams struct {
	fx.In

	AnotherLogger logging.Interface `name:"another_log"`
	Fs            afero.Fs
}

var Module = fx.Provide(
	func(v *viper.Viper, params recipeAgentParams) (*RecipeAgent, error) {
		config, err := NewRecipeAgentConfig(
			WithViper(v),
			WithAnotherLog(params.AnotherLogger),
			WithFs(params.Fs),
		)
		if err != nil {
			return nil, fmt.Errorf("error creating recipe agent config: %+v", err)
		}
		return NewRecipeAgent(config)
	})
