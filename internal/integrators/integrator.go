package integrators

import (
	"fmt"
	"sort"
	"time"

	"github.com/pacce/ventilation/internal/quantity"
)

// Integrator turns the flow over one step into the volume displaced.
type Integrator interface {
	Integrate(prev, cur quantity.Flow, dt time.Duration) quantity.Volume
	Name() string
}

var registry = map[string]func() Integrator{
	"rectangle": func() Integrator { return NewRectangle() },
	"trapezoid": func() Integrator { return NewTrapezoid() },
}

// ByName returns a fresh integrator registered under name.
func ByName(name string) (Integrator, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return ctor(), nil
}

// Names lists the registered integrators in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
