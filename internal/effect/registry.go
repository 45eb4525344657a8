package effect

import "sort"

// Func is the common shape of the effect generators.
type Func func(cv *Canvas, n int)

var registry = map[string]Func{
	"rain":   Rain,
	"planes": Planes,
	"spiral": Spiral,
	"walk":   Walk,
}

func Lookup(name string) (Func, bool) {
	f, ok := registry[name]
	return f, ok
}

func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
