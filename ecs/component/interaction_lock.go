package component

// InteractionLock caches the presenter's interacting flag. Active is sampled
// once per frame after the camera runs and read by every physics tick of the
// following frame. Requested marks a locking clip started since that sample,
// so later ticks of the same frame do not start it again.
type InteractionLock struct {
	Active    bool
	Requested bool
}

// Held reports whether a locking clip is playing or was started this frame.
func (l *InteractionLock) Held() bool {
	return l.Active || l.Requested
}

var InteractionLockComponent = NewComponent[InteractionLock]()
