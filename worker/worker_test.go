package worker

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestGoContainsPanics(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	done := make(chan struct{})
	Go("test", log, func() {
		defer close(done)
		panic("boom")
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not run")
	}
}
