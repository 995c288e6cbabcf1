package game

// ReleaseStatus is what a release rule may inspect.
type ReleaseStatus struct {
	Consumed int
	Elapsed  float64
	Level    int
}

// ReleaseGate decides when an idle pursuer leaves the house.
type ReleaseGate interface {
	Release(id Identity, status ReleaseStatus) bool
}

// ThresholdGate releases a pursuer once the consumed-pickup count reaches
// its threshold. Identities without an entry are released immediately.
type ThresholdGate map[Identity]int

// Release implements ReleaseGate.
func (g ThresholdGate) Release(id Identity, status ReleaseStatus) bool {
	return status.Consumed >= g[id]
}

// ReleaseFunc adapts a plain function to ReleaseGate.
type ReleaseFunc func(id Identity, status ReleaseStatus) bool

// Release implements ReleaseGate.
func (f ReleaseFunc) Release(id Identity, status ReleaseStatus) bool {
	return f(id, status)
}
