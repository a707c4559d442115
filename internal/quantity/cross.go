package quantity

import (
	"math"
	"time"
)

// MulFlow returns the pressure drop r·f across the airway.
func (r Resistance) MulFlow(f Flow) Pressure {
	return Pressure{raw: mulRaw(r.raw, f.raw)}
}

func (f Flow) MulResistance(r Resistance) Pressure {
	return r.MulFlow(f)
}

// MulVolume returns the elastic recoil pressure e·v.
func (e Elastance) MulVolume(v Volume) Pressure {
	return Pressure{raw: mulRaw(e.raw, v.raw)}
}

func (v Volume) MulElastance(e Elastance) Pressure {
	return e.MulVolume(v)
}

// Over returns the volume displaced by f during dt.
func (f Flow) Over(dt time.Duration) Volume {
	return Volume{raw: mulDuration(f.raw, dt)}
}

// Clamp limits f to [-limit, +limit]. The sign of limit is ignored.
func (f Flow) Clamp(limit Flow) Flow {
	l := limit.Abs()
	switch {
	case f.raw > l.raw:
		return l
	case f.raw < -l.raw:
		return l.Neg()
	}
	return f
}

// Elastance returns 1/c. A zero compliance has no finite elastance.
func (c Compliance) Elastance() (Elastance, error) {
	if c.raw == 0 {
		return Elastance{}, domain("elastance", math.Inf(1))
	}
	return Elastance{raw: inverse(c.raw)}, nil
}

// Compliance returns 1/e. A zero elastance has no finite compliance.
func (e Elastance) Compliance() (Compliance, error) {
	if e.raw == 0 {
		return Compliance{}, domain("compliance", math.Inf(1))
	}
	return Compliance{raw: inverse(e.raw)}, nil
}
