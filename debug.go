package trail

// debugInterval is how often, in seconds, debug mode logs stats.
const debugInterval = 1.0

// debugTick accumulates frame time and logs the stats delta once per
// interval. Only called when debug mode is on.
func (e *Effect) debugTick(dt float32) {
	e.debugAccum += dt
	if e.debugAccum < debugInterval {
		return
	}
	e.debugAccum = 0

	cur := e.Stats()
	prev := e.debugLast
	e.debugLast = cur
	e.logger.Printf("moves: %d | triggers: %d | stamps: %d | preempted: %d | dropped: %d",
		cur.Moves-prev.Moves, cur.Triggers-prev.Triggers, cur.Stamps-prev.Stamps,
		cur.Preemptions-prev.Preemptions, cur.Dropped-prev.Dropped)
	e.logger.Printf("active slots: %d/%d | zorder: %d | errors: %d",
		cur.Active, e.pool.Len(), e.zOrder, cur.Errors)
}
