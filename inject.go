package trail

// syntheticMove is one queued pointer event. Coordinates are in container
// space, the same space hosts pass to OnPointerMove.
type syntheticMove struct {
	pos   Vec2
	enter bool
	leave bool
}

// InjectEnter queues a pointer entry at (x, y). Each queued event is consumed
// by one Update call, before the slots animate.
func (e *Effect) InjectEnter(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticMove{pos: Vec2{x, y}, enter: true})
}

// InjectMove queues a single pointer move at (x, y).
func (e *Effect) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticMove{pos: Vec2{x, y}})
}

// InjectLeave queues the pointer leaving the container.
func (e *Effect) InjectLeave() {
	e.injectQueue = append(e.injectQueue, syntheticMove{leave: true})
}

// InjectPath queues moves from (fromX, fromY) to (toX, toY), linearly
// interpolated over frames moves with the last one landing on the target.
// The sequence consumes frames Update calls; frames below 1 is treated as 1.
func (e *Effect) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// Pending returns the number of queued synthetic events.
func (e *Effect) Pending() int {
	return len(e.injectQueue)
}

// processInjectedInput pops one event from the queue and feeds it through
// the same entry points as real host input. Returns true if one was consumed.
func (e *Effect) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch {
	case evt.enter:
		e.OnPointerEnter(evt.pos)
	case evt.leave:
		e.OnPointerLeave()
	default:
		e.OnPointerMove(evt.pos)
	}
	return true
}
