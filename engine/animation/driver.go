package animation

import "sync"

/**
 * @brief Driver is the mutable cell holding zero-or-one mixer for the
 * external render loop. The render loop calls Advance once per frame; the
 * load controller swaps the cell on publish and clears it as the first
 * teardown step, so a frame tick can never advance a mixer whose scene is
 * mid-teardown.
 */
type Driver struct {
	mu    sync.Mutex
	mixer *Mixer
}

func NewDriver() *Driver {
	return &Driver{}
}

// Set installs the mixer for the currently published scene.
func (d *Driver) Set(m *Mixer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mixer = m
}

// Clear empties the cell and returns the previous mixer so the caller can
// stop its actions. A frame tick running concurrently either finishes
// before the clear or observes the empty cell; it never sees a half
// torn-down mixer.
func (d *Driver) Clear() *Mixer {
	d.mu.Lock()
	defer d.mu.Unlock()
	m := d.mixer
	d.mixer = nil
	return m
}

// Handle returns the current mixer, or nil when no animated scene is
// published.
func (d *Driver) Handle() *Mixer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mixer
}

// Advance ticks the current mixer by deltaTime seconds. Returns false when
// the cell is empty. The advance runs under the cell lock so it is ordered
// against Set/Clear.
func (d *Driver) Advance(deltaTime float32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mixer == nil {
		return false
	}
	d.mixer.Advance(deltaTime)
	return true
}
