package launch_agent

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/prefopt-project/prefopt/pkg/afero"
	"github.com/prefopt-project/prefopt/pkg/logging"
)

type launchAgentParams struct {
	fx.In

	AnotherLogger logging.Interface `name:"another_log"`
	Fs            afero.Fs
}

var Module = fx.Provide(
	func(v *viper.Viper, params launchAgentParams) (*LaunchAgent, error) {
		config, err := NewLaunchAgentConfig(
			WithViper(v),
			WithAnotherLog(params.AnotherLogger),
			WithFs(params.Fs),
		)
		if err != nil {
			return nil, fmt.Errorf("error creating launch agent config: %+v", err)
		}
		return NewLaunchAgent(config)
	})
