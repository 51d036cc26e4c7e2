// Profiling:
// go build ./cmd/ecsbench/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof
package main

import (
	"github.com/kelthara/ecs"
	"github.com/pkg/profile"
)

type position struct {
	X int64
	Y int64
}

type velocity struct {
	X int64
	Y int64
}

func main() {
	rounds := 50
	iters := 10000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for r := 0; r < rounds; r++ {
		w := ecs.NewWorld()
		for it := 0; it < iters; it++ {
			created := make([]ecs.Entity, 0, numEntities)
			for i := 0; i < numEntities; i++ {
				e := w.NewEntity()
				ecs.AddComponent(e, position{})
				ecs.AddComponent(e, velocity{X: 1, Y: 1})
				created = append(created, e)
			}
			v := ecs.NewView2[position, velocity](w)
			for v.Valid() {
				pos := ecs.ViewGet[position](v)
				vel := ecs.ViewGet[velocity](v)
				pos.X += vel.X
				pos.Y += vel.Y
				v.Next()
			}
			for _, e := range created {
				e.Destroy()
			}
		}
	}
}
