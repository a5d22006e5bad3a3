package afero

import (
	"github.com/spf13/afero"
	"go.uber.org/fx"
)

var fs = afero.NewOsFs()

// Module makes both the standard spf13 afero.Fs and this package's Fs alias
// available to agents.
var Module fx.Option = fx.Provide(
	func() Fs { return fs },
	func() afero.Fs { return fs },
)

// NewMemMapFs returns an in-mem fs, for tests.
func NewMemMapFs() Fs { return afero.NewMemMapFs() }
