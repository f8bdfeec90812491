package reactive

// Recorder receives counters from the reactive core. pkg/metrics provides a
// Prometheus implementation; the default records nothing.
type Recorder interface {
	// PropertyObserved is called once per property wired with a Dep.
	PropertyObserved()

	// SubscriberRegistered is called for every Dep registration.
	SubscriberRegistered()

	// PropertyWritten is called for every write to a tracked property.
	PropertyWritten(changed bool)

	// NotifyFanout is called before a Dep notifies its subscribers.
	NotifyFanout(subscribers int)

	// NotifyDropped is called when a notify budget drops a notification.
	NotifyDropped()

	// WatcherCreated is called once per watcher construction.
	WatcherCreated()

	// WatcherUpdated is called once per watcher re-evaluation.
	WatcherUpdated()

	// CallbackPanicked is called when a recovering watcher's callback panics.
	CallbackPanicked()
}

type nopRecorder struct{}

func (nopRecorder) PropertyObserved()     {}
func (nopRecorder) SubscriberRegistered() {}
func (nopRecorder) PropertyWritten(bool)  {}
func (nopRecorder) NotifyFanout(int)      {}
func (nopRecorder) NotifyDropped()        {}
func (nopRecorder) WatcherCreated()       {}
func (nopRecorder) WatcherUpdated()       {}
func (nopRecorder) CallbackPanicked()     {}
