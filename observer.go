package fbin

// Event is delivered once per image, in manifest order, after the image has
// either been written or skipped.
type Event struct {
	Index int // Zero-based position in the manifest
	Total int
	Name  string
	Bytes int   // Bytes written for this image
	Err   error // Non-nil if the image was skipped
}

// Observer receives progress events. It must not block for long as encoding
// waits for it to return.
type Observer interface {
	Progress(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Progress calls f(e).
func (f ObserverFunc) Progress(e Event) {
	f(e)
}

type channelObserver chan<- Event

func (c channelObserver) Progress(e Event) {
	select {
	case c <- e:
	default:
	}
}

// ChannelObserver returns an Observer that sends events to c without
// blocking. Events are dropped if c is not ready, so c should be buffered.
func ChannelObserver(c chan<- Event) Observer {
	return channelObserver(c)
}

func notify(o Observer, e Event) {
	if o == nil {
		return
	}
	// Panics in the observer are ignored
	defer func() {
		_ = recover()
	}()
	o.Progress(e)
}
