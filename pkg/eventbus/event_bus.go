package eventbus

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-faster/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

type Subscriber struct {
	Handler interface{}
}

type EventBus interface {
	Publish(args ...interface{})
	Subscribe(handler interface{})
	Unsubscribe(handler interface{})
	Clear()
	SubscribersCount() int
}

type EventBusWithError interface {
	EventBus
	PublishE(args ...any) error
}

var (
	ErrNoSubscribers        = errors.New("no matching subscribers")
	ErrInvalidHandlerReturn = errors.New("invalid handler return signature")
)

var eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "worktrack_events_published_total",
	Help: "Domain events published on the in-process bus.",
}, []string{"event", "result"})

type publisherImpl struct {
	log         *logrus.Logger
	mu          sync.RWMutex
	Subscribers []Subscriber
}

func NewEventPublisher(log *logrus.Logger) EventBusWithError {
	return &publisherImpl{log: log}
}

func MatchSignature(handler interface{}, args []interface{}) bool {
	t := reflect.TypeOf(handler)
	if t.Kind() != reflect.Func {
		return false
	}
	if t.NumIn() != len(args) {
		return false
	}

	for i, arg := range args {
		paramType := t.In(i)
		if arg == nil {
			if paramType.Kind() != reflect.Interface && paramType.Kind() != reflect.Ptr {
				return false
			}
			continue
		}
		argType := reflect.TypeOf(arg)
		if paramType.Kind() == reflect.Interface {
			if !argType.Implements(paramType) {
				return false
			}
			continue
		}
		if !argType.AssignableTo(paramType) {
			return false
		}
	}
	return true
}

func eventName(args []interface{}) string {
	if len(args) == 0 || args[len(args)-1] == nil {
		return "unknown"
	}
	return reflect.TypeOf(args[len(args)-1]).String()
}

func valuesOf(args []interface{}, handler reflect.Type) []reflect.Value {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(handler.In(i))
			continue
		}
		in[i] = reflect.ValueOf(arg)
	}
	return in
}

func (p *publisherImpl) matching(args []interface{}) []Subscriber {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Subscriber, 0, len(p.Subscribers))
	for _, s := range p.Subscribers {
		if MatchSignature(s.Handler, args) {
			out = append(out, s)
		}
	}
	return out
}

// Publish calls every subscriber whose signature matches args. A panicking
// handler is logged and does not stop the others.
func (p *publisherImpl) Publish(args ...interface{}) {
	name := eventName(args)
	handled := false
	for _, subscriber := range p.matching(args) {
		v := reflect.ValueOf(subscriber.Handler)
		func() {
			defer func() {
				if r := recover(); r != nil {
					eventsTotal.WithLabelValues(name, "panic").Inc()
					if p.log != nil {
						p.log.Errorf("eventbus: handler %s panicked with args %v: %v", v.Type().String(), args, r)
					}
				}
			}()
			v.Call(valuesOf(args, v.Type()))
			handled = true
		}()
	}

	if !handled {
		eventsTotal.WithLabelValues(name, "unhandled").Inc()
		if p.log != nil {
			p.log.Warnf("eventbus.Publish: no matching subscribers for event %s", name)
		}
		return
	}
	eventsTotal.WithLabelValues(name, "ok").Inc()
}

// PublishE is like Publish but collects handler errors and panics.
func (p *publisherImpl) PublishE(args ...any) error {
	subscribers := p.matching(args)
	if len(subscribers) == 0 {
		return ErrNoSubscribers
	}

	errType := reflect.TypeOf((*error)(nil)).Elem()
	var errs []error
	for _, subscriber := range subscribers {
		v := reflect.ValueOf(subscriber.Handler)
		func() {
			defer func() {
				if r := recover(); r != nil {
					errs = append(errs, fmt.Errorf("eventbus: handler %s panicked: %v", v.Type().String(), r))
				}
			}()

			out := v.Call(valuesOf(args, v.Type()))
			switch {
			case len(out) == 0:
			case len(out) != 1:
				errs = append(errs, errors.Wrapf(ErrInvalidHandlerReturn, "handler %s returned %d values", v.Type().String(), len(out)))
			case out[0].Type() != errType:
				errs = append(errs, errors.Wrapf(ErrInvalidHandlerReturn, "handler %s return type is %s", v.Type().String(), out[0].Type().String()))
			case !out[0].IsNil():
				errs = append(errs, out[0].Interface().(error))
			}
		}()
	}
	return stderrors.Join(errs...)
}

func (p *publisherImpl) Subscribe(handler interface{}) {
	if reflect.TypeOf(handler).Kind() != reflect.Func {
		panic("handler must be a function")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Subscribers = append(p.Subscribers, Subscriber{Handler: handler})
}

// Unsubscribe removes the first subscriber registered with the same function.
func (p *publisherImpl) Unsubscribe(handler interface{}) {
	ptr := reflect.ValueOf(handler).Pointer()
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, subscriber := range p.Subscribers {
		if reflect.ValueOf(subscriber.Handler).Pointer() == ptr {
			p.Subscribers = append(p.Subscribers[:i], p.Subscribers[i+1:]...)
			return
		}
	}
}

func (p *publisherImpl) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Subscribers = []Subscriber{}
}

func (p *publisherImpl) SubscribersCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.Subscribers)
}
