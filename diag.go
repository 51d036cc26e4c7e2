package ecs

import "github.com/rs/zerolog"

// SetLogger installs a structured logger for diagnostic events — pool
// creation and pools shrunk by garbage collection. It is never
// consulted on hot paths (entity creation, component add/get/remove, view
// iteration); the default is a no-op logger.
func (w *World) SetLogger(logger zerolog.Logger) {
	w.logger = logger
}

func (w *World) logPoolCreated(id ComponentID) {
	w.logger.Debug().Uint32("component", uint32(id)).Msg("ecs: pool created")
}

func (w *World) logPoolShrunk(id ComponentID, from, to int) {
	w.logger.Debug().
		Uint32("component", uint32(id)).
		Int("from", from).
		Int("to", to).
		Msg("ecs: pool shrunk")
}
