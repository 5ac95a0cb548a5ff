package launcher

import "sync"

// Dispatcher runs callbacks on the caller's UI context.
type Dispatcher interface {
	Post(fn func())
}

// Immediate runs callbacks inline on the posting goroutine.
type Immediate struct{}

// Post runs fn now.
func (Immediate) Post(fn func()) { fn() }

// DefaultEventLoopBuffer is the queue length used by NewEventLoop when
// buffer is not positive.
const DefaultEventLoopBuffer = 64

// EventLoop runs posted callbacks one at a time on a single goroutine.
type EventLoop struct {
	tasks chan func()
	stop  chan struct{}
	done  chan struct{}
	once  sync.Once
}

// NewEventLoop starts a loop.
func NewEventLoop(buffer int) *EventLoop {
	if buffer <= 0 {
		buffer = DefaultEventLoopBuffer
	}
	e := &EventLoop{
		tasks: make(chan func(), buffer),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go e.run()
	return e
}

// Post queues fn. Callbacks posted after Close are dropped.
func (e *EventLoop) Post(fn func()) {
	select {
	case <-e.stop:
		return
	default:
	}
	select {
	case e.tasks <- fn:
	case <-e.stop:
	}
}

// Close runs what is already queued, then stops the loop.
func (e *EventLoop) Close() {
	e.once.Do(func() { close(e.stop) })
	<-e.done
}

func (e *EventLoop) run() {
	defer close(e.done)
	for {
		select {
		case fn := <-e.tasks:
			fn()
		case <-e.stop:
			for {
				select {
				case fn := <-e.tasks:
					fn()
				default:
					return
				}
			}
		}
	}
}
