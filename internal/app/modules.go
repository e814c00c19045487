package app

import (
	"github.com/vk/ipforge/internal/registry"
	"github.com/vk/ipforge/modules/dsp"
	"github.com/vk/ipforge/modules/io_buffer"
	"github.com/vk/ipforge/modules/on_chip_memory"
	"github.com/vk/ipforge/modules/serdes"
)

// coreModules is the catalog compiled into the ipforge binary.
var coreModules = []registry.Module{
	&dsp.Module{},
	&io_buffer.Module{},
	&on_chip_memory.Module{},
	&serdes.Module{},
}
