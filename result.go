package scrim

// Callback is a deferred mutation run against the App once it is safe to
// touch global state, after event dispatch has returned
type Callback func(*App)

// EventResult is what a view answers to an event
type EventResult struct {
	consumed bool
	callback Callback
}

// Ignored reports the view did not use the event
func Ignored() EventResult {
	return EventResult{}
}

// Consumed reports the view used the event
func Consumed() EventResult {
	return EventResult{consumed: true}
}

// ConsumedWith reports the view used the event and wants cb run against
// the App afterwards
func ConsumedWith(cb Callback) EventResult {
	return EventResult{consumed: true, callback: cb}
}

// IsConsumed reports whether the event was used
func (r EventResult) IsConsumed() bool {
	return r.consumed
}

// Process runs the deferred callback, if any, against the App
func (r EventResult) Process(a *App) {
	if r.callback != nil {
		r.callback(a)
	}
}
