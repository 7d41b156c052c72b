package flyingcam

import "github.com/sirupsen/logrus"

// Rerouter forwards clouds from an input channel to an output channel, one per call.
type Rerouter struct {
	bus *Bus
	in  string
	out string
}

// NewRerouter creates a rerouter between the named channels of bus.
func NewRerouter(bus *Bus, in, out string) *Rerouter {
	return &Rerouter{bus: bus, in: in, out: out}
}

// RerouteOne moves the oldest cloud on the input channel to the output channel.
// Returns false when the input channel is empty.
func (r *Rerouter) RerouteOne() bool {
	cloud, ok := r.bus.Pop(r.in)
	if !ok {
		logrus.Debugf("reroute %s -> %s: input empty", r.in, r.out)
		return false
	}
	cloud.Channel = r.out
	r.bus.Publish(r.out, cloud)
	logrus.Debugf("reroute %s -> %s: cloud %s (%d points)", r.in, r.out, cloud.ID, len(cloud.Points))
	return true
}

// Channels returns the input and output channel names.
func (r *Rerouter) Channels() (in, out string) {
	return r.in, r.out
}
