package app

import (
	"io"

	"github.com/vk/assemblygo/internal/catalog"
	"github.com/vk/assemblygo/modules/env_vars"
	"github.com/vk/assemblygo/modules/fizzbuzz"
	"github.com/vk/assemblygo/modules/jsonpath"
	"github.com/vk/assemblygo/modules/print"
)

// CoreModules is the definitive list of all modules that are compiled into
// the assemblygo binary. out receives program output, log the call logs of
// the example application.
func CoreModules(out, log io.Writer) []catalog.Module {
	return []catalog.Module{
		&env_vars.Module{},
		&print.Module{Out: out},
		&jsonpath.Module{},
		&fizzbuzz.Module{Out: out, Log: log},
	}
}
