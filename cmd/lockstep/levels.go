package main

import (
	"time"

	"github.com/sirupsen/logrus"
)

// levels is the level driver of a headless peer. It has no levels to load and only logs what a
// player would see.
type levels struct {
	log *logrus.Logger
}

func newLevels(log *logrus.Logger) levels {
	return levels{log: log}
}

func (l levels) Transition() {
	l.log.Info("local player left the level")
}

func (l levels) Abort() {
	l.log.Info("local player aborted the level")
}

func (l levels) Goto(place, start int16) {
	l.log.Infof("moving to place %d, start %d", place, start)
}

// clock counts local ticks since it was created.
type clock struct {
	start time.Time
	tick  time.Duration
}

func newClock(ticksPerSecond int) clock {
	return clock{start: time.Now(), tick: time.Second / time.Duration(ticksPerSecond)}
}

func (c clock) Now() uint32 {
	return uint32(time.Since(c.start) / c.tick)
}
