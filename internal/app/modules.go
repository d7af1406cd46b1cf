package app

import (
	"github.com/vk/lakedag/internal/opregistry"
	"github.com/vk/lakedag/modules/env_vars"
	"github.com/vk/lakedag/modules/print"
)

// coreModules is the default set of node operations wired into every App
// that doesn't supply its own.
var coreModules = []func(*opregistry.Registry){
	env_vars.Register,
	print.Register,
}
