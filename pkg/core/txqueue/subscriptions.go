package txqueue

import (
	"github.com/Th-ium/ThiumCore/pkg/core/queueevent"
)

// RunSubscriptions runs the subscription goroutine if queue subscriptions
// are enabled. You should manually free the resources by calling
// StopSubscriptions on queue shutdown.
func (q *Queue) RunSubscriptions() {
	if !q.subscriptionsEnabled {
		panic("subscriptions are disabled")
	}
	if !q.subscriptionsOn.Load() {
		q.subscriptionsOn.Store(true)
		go q.notificationDispatcher()
	}
}

// StopSubscriptions stops the queue events loop.
func (q *Queue) StopSubscriptions() {
	if !q.subscriptionsEnabled {
		panic("subscriptions are disabled")
	}
	if q.subscriptionsOn.Load() {
		q.subscriptionsOn.Store(false)
		close(q.stopCh)
	}
}

// SubscribeForTransactions adds the given channel to the queue event
// broadcasting, so when a transaction is admitted, removed, banned or
// replaced you'll receive it via this channel.
func (q *Queue) SubscribeForTransactions(ch chan<- queueevent.Event) {
	if q.subscriptionsOn.Load() {
		q.subCh <- ch
	}
}

// UnsubscribeFromTransactions unsubscribes the given channel from queue
// notifications, you can close it afterwards. Passing a non-subscribed
// channel is a no-op.
func (q *Queue) UnsubscribeFromTransactions(ch chan<- queueevent.Event) {
	if q.subscriptionsOn.Load() {
		q.unsubCh <- ch
	}
}

// notify hands the event over to the dispatcher if anyone may be listening.
func (q *Queue) notify(event queueevent.Event) {
	if q.subscriptionsOn.Load() {
		q.events <- event
	}
}

// notificationDispatcher manages subscriptions to events and broadcasts new
// events.
func (q *Queue) notificationDispatcher() {
	// This is just a set of subscribers, though modelled as a map for ease
	// of management (not a lot of subscriptions is really expected).
	txFeed := make(map[chan<- queueevent.Event]bool)
	for {
		select {
		case <-q.stopCh:
			return
		case sub := <-q.subCh:
			txFeed[sub] = true
		case unsub := <-q.unsubCh:
			delete(txFeed, unsub)
		case event := <-q.events:
			for ch := range txFeed {
				ch <- event
			}
		}
	}
}
