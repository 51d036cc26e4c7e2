// Profiling:
// go build ./cmd/ecsbench/view
// go tool pprof -http=":8000" -nodefraction=0.001 ./view cpu.prof
package main

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/kelthara/ecs"
)

type comp1 struct{ V, W int64 }
type comp2 struct{ V, W int64 }
type comp3 struct{ V, W int64 }
type comp4 struct{ V, W int64 }

func main() {
	f, _ := os.Create("cpu.prof")
	_ = pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	rounds := 50
	iters := 10000
	entities := 100000
	run(rounds, iters, entities)

	memFile, _ := os.Create("mem.prof")
	defer memFile.Close()
	runtime.GC()
	_ = pprof.WriteHeapProfile(memFile)
}

func run(rounds, iters, numEntities int) {
	for r := 0; r < rounds; r++ {
		w := ecs.NewWorld()
		for i := 0; i < numEntities; i++ {
			e := w.NewEntity()
			ecs.AddComponent(e, comp1{})
			ecs.AddComponent(e, comp2{V: 1, W: 1})
			ecs.AddComponent(e, comp3{})
			ecs.AddComponent(e, comp4{})
		}

		for it := 0; it < iters; it++ {
			v := ecs.NewView4[comp1, comp2, comp3, comp4](w)
			for v.Valid() {
				c1 := ecs.ViewGet[comp1](v)
				c2 := ecs.ViewGet[comp2](v)
				c1.V += c2.V
				c1.W += c2.W
				v.Next()
			}
		}
	}
}
