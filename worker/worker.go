package worker

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/lockstep/oerror"
	"github.com/sirupsen/logrus"
)

// Go runs f on a new goroutine. A panic in f is logged and reported to Sentry instead of
// crashing the process; the goroutine then ends.
func Go(name string, log logrus.FieldLogger, f func()) {
	go func() {
		defer Recover(name, log)
		f()
	}()
}

// Recover recovers a panic of the calling goroutine and reports it. It must be deferred.
func Recover(name string, log logrus.FieldLogger) {
	v := recover()
	if v == nil {
		return
	}
	log.Errorf("%s panic: %v", name, v)
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("worker", name)
	})
	hub.Recover(oerror.New("%v", v))
	hub.Flush(time.Second * 5)
}
