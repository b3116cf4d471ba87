package app

import (
	"github.com/vk/itemhub/components/envvars"
	"github.com/vk/itemhub/components/httpclient"
	"github.com/vk/itemhub/components/printer"
	"github.com/vk/itemhub/components/redisclient"
	"github.com/vk/itemhub/components/socketioclient"
	"github.com/vk/itemhub/internal/hub"
)

// coreComponents is the definitive list of components compiled into the
// itemhub binary. Every item they contribute is lazy, so defining them is
// free until something resolves one.
func coreComponents(cfg *Config) []hub.Component {
	comps := []hub.Component{
		&envvars.Component{DotenvPath: cfg.DotenvPath},
		&httpclient.Component{},
		&redisclient.Component{},
		&socketioclient.Component{},
	}
	if len(cfg.WatchItems) > 0 {
		comps = append(comps, printer.New(cfg.WatchItems...))
	}
	return comps
}
