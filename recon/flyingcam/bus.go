package flyingcam

import "sync"

// Bus is an in-memory set of named FIFO point-cloud channels.
// Safe for concurrent use.
type Bus struct {
	mu       sync.Mutex
	channels map[string][]PointCloud
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{channels: make(map[string][]PointCloud)}
}

// Publish appends cloud to channel.
func (b *Bus) Publish(channel string, cloud PointCloud) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.channels[channel] = append(b.channels[channel], cloud)
}

// Pop removes and returns the oldest cloud on channel.
func (b *Bus) Pop(channel string) (PointCloud, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	queue := b.channels[channel]
	if len(queue) == 0 {
		return PointCloud{}, false
	}
	cloud := queue[0]
	b.channels[channel] = queue[1:]
	return cloud, true
}

// Len returns the number of clouds waiting on channel.
func (b *Bus) Len(channel string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.channels[channel])
}

// Drain removes and returns every cloud on channel in arrival order.
func (b *Bus) Drain(channel string) []PointCloud {
	b.mu.Lock()
	defer b.mu.Unlock()
	queue := b.channels[channel]
	delete(b.channels, channel)
	return queue
}
