package app

import (
	"github.com/ashkalikava/net-parser/internal/registry"
	"github.com/ashkalikava/net-parser/modules/checkout"
	"github.com/ashkalikava/net-parser/modules/coverage"
	"github.com/ashkalikava/net-parser/modules/pip"
	"github.com/ashkalikava/net-parser/modules/python"
	"github.com/ashkalikava/net-parser/modules/run"
)

// coreModules is the definitive list of step modules compiled into the
// runner binary.
var coreModules = []registry.Module{
	&checkout.Module{},
	&python.Module{},
	&pip.Module{},
	&run.Module{},
	&coverage.Module{},
}
