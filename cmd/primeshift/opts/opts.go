package opts

import (
	"github.com/primeshift/primeshift/pkg/config"
	"github.com/primeshift/primeshift/pkg/report"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config  *config.Config
	Printer *report.Printer
}
