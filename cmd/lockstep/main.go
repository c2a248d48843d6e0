package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/lockstep/presenter"
	"github.com/oomph-ac/lockstep/session"
	"github.com/oomph-ac/lockstep/settings"
	"github.com/oomph-ac/lockstep/transport"
	"github.com/oomph-ac/lockstep/world"
	"github.com/sirupsen/logrus"
)

// The following program runs a headless lockstep peer. It synchronizes with the other peers named
// in the settings file and logs everything that would otherwise be presented to a player.
func main() {
	path := "lockstep.toml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := settings.SaveDefault(path); err != nil {
			panic(err)
		}
		fmt.Printf("Default settings written to %s, edit them and restart.\n", path)
		return
	}
	conf, err := settings.Load(path)
	if err != nil {
		panic(err)
	}

	log := newLogger(conf)
	if conf.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         conf.Sentry.DSN,
			Environment: conf.Sentry.Environment,
		}); err != nil {
			log.Errorf("unable to initialize sentry: %v", err)
		}
		defer sentry.Flush(5 * time.Second)
	}
	if conf.Debug.StatsAddress != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(conf.Debug.StatsAddress))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, log, conf); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("peer stopped: %v", err)
	}
}

func newLogger(conf settings.Settings) *logrus.Logger {
	log := logrus.New()
	if conf.Log.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
		})
	}
	level, err := logrus.ParseLevel(conf.Log.Level)
	if err != nil {
		log.Warnf("unknown log level %q, using info", conf.Log.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// run connects to the other peers and drives the session until ctx is cancelled.
func run(ctx context.Context, log *logrus.Logger, conf settings.Settings) error {
	integrity, ok := session.ParseIntegrityMode(conf.Session.Integrity)
	if !ok {
		return fmt.Errorf("unknown integrity mode %q", conf.Session.Integrity)
	}
	local := uint8(conf.Session.LocalSlot)

	t, err := dial(ctx, log, conf)
	if err != nil {
		return err
	}
	defer t.Close()

	w := world.New(log)
	pr := presenter.NewLog(log)
	s := session.New(session.Config{
		Log:            log,
		World:          w,
		Simulation:     w,
		Presenter:      pr,
		Levels:         newLevels(log),
		Inventory:      world.NewInventory(16),
		Transport:      t,
		Clock:          newClock(conf.Session.TicksPerSecond),
		Slots:          conf.Session.Slots,
		LocalSlot:      local,
		Group:          conf.Session.Group,
		SendInterval:   conf.Session.SendInterval,
		DuplicateSends: conf.Session.DuplicateSends,
		MaxDelta:       conf.Session.MaxDelta,
		HistorySize:    conf.Session.HistorySize,
		DivergenceRing: conf.Session.DivergenceRing,
		Integrity:      integrity,
	})
	for slot := 0; slot < conf.Session.Slots; slot++ {
		s.Connect(uint8(slot))
	}
	log.Infof("session %s started as slot %d of %d", s.ID(), local, conf.Session.Slots)

	ticker := time.NewTicker(time.Second / time.Duration(conf.Session.TicksPerSecond))
	defer ticker.Stop()
	report := time.NewTicker(10 * time.Second)
	defer report.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-report.C:
			st := s.Stats()
			log.WithFields(logrus.Fields{
				"ticks":       st.Ticks,
				"sync_time":   st.SyncTime,
				"live":        st.Live,
				"sent":        st.FramesSent,
				"accepted":    st.FramesAccepted,
				"recovered":   st.FramesRecovered,
				"stale":       st.FramesStale,
				"divergences": st.Divergences,
				"rollbacks":   st.Rollbacks,
			}).Info("session stats")
		case <-ticker.C:
			if err := s.Update(ctx); err != nil {
				log.Debugf("update: %v", err)
			}
			if s.Live() == 0 {
				log.Info("every participant left the session")
				return nil
			}
		}
	}
}

// dial creates the transport named in the settings.
func dial(ctx context.Context, log *logrus.Logger, conf settings.Settings) (transport.Transport, error) {
	local := uint8(conf.Session.LocalSlot)
	switch conf.Network.Transport {
	case "raknet":
		r, err := transport.ListenRakNet(log, local, conf.Network.Listen)
		if err != nil {
			return nil, fmt.Errorf("listen raknet: %w", err)
		}
		for slot, addr := range conf.Network.Peers[:conf.Session.Slots] {
			if uint8(slot) != local {
				r.Connect(ctx, uint8(slot), addr)
			}
		}
		return r, nil
	case "websocket":
		if conf.Network.RelayListen != "" {
			srv := &http.Server{Addr: conf.Network.RelayListen, Handler: transport.NewRelay(log)}
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorf("relay: %v", err)
				}
			}()
			context.AfterFunc(ctx, func() { _ = srv.Close() })
		}
		ws, err := transport.DialWebSocket(ctx, log, conf.Network.Relay, local)
		if err != nil {
			return nil, fmt.Errorf("dial relay: %w", err)
		}
		return ws, nil
	}
	return nil, fmt.Errorf("unknown transport %q", conf.Network.Transport)
}
