package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"esbBot/internal/app"
	"esbBot/internal/app/events"
	"esbBot/internal/domain"
	"esbBot/internal/infrastructure/config"
	"esbBot/internal/infrastructure/metrics"
	sqlitestorage "esbBot/internal/infrastructure/persistence/sqlite"
	"esbBot/internal/infrastructure/tiamp"
	kickadapter "esbBot/internal/interface/adapters/kick"
	twitchadapter "esbBot/internal/interface/adapters/twitch"
	ws "esbBot/internal/interface/api/ws"
	"esbBot/internal/interface/outs"
	"esbBot/internal/usecase/commands"
	"esbBot/internal/usecase/directory"
	"esbBot/internal/usecase/esbconfig"
	"esbBot/internal/usecase/handle_message"
	"esbBot/internal/usecase/notifications"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---------- 1) Settings store and esb configuration ----------

	store, err := sqlitestorage.NewStore(c.DatabasePath)
	if err != nil {
		log.Fatalf("sqlite: %v", err)
	}
	defer store.Close()

	esbManager, err := esbconfig.NewManager(ctx, store, c.EsbOverrides)
	if err != nil {
		log.Fatalf("esb configuration rejected: %v", err)
	}

	bus := events.NewBus()
	defer bus.Close()
	esbCfg := app.NewAuditedSettings(esbManager, bus)

	// ---------- 2) Commands ----------

	m := metrics.NewMetrics(prometheus.DefaultRegisterer)
	lookup := directory.NewService(esbCfg, m.InstrumentFetcher(tiamp.NewClient()))

	router := commands.NewRouter(c.CommandPrefix)
	router.Register(commands.NewPingCommand())
	router.Register(commands.NewEsbCommand(lookup))
	router.Register(commands.NewEsbConfigCommand(esbCfg))
	router.SetObserver(app.Observers(app.CommandObserver(bus), app.MetricsObserver(m)))

	// ---------- 3) Adapters ----------

	multiOut := outs.NewMultiSender()
	uc := handle_message.NewInteractor(multiOut, router)

	apiServer := ws.NewServer(ws.Config{
		Addr:           c.APIAddr,
		Settings:       esbCfg,
		Metrics:        promhttp.Handler(),
		AllowedOrigins: c.AllowedOrigins,
	})
	apiServer.SetHandler(uc.Handle)
	multiOut.Register(domain.PlatformWeb, apiServer)

	var wg sync.WaitGroup
	run := func(name string, start func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := start(ctx); err != nil && err != context.Canceled {
				log.Printf("%s error: %v", name, err)
			}
		}()
	}

	run("api server", apiServer.Start)
	run("event logger", func(ctx context.Context) error {
		notifications.NewEventLogger().Run(ctx, bus)
		return nil
	})

	if c.TwitchConfigured() {
		twitchAd := twitchadapter.NewAdapter(twitchadapter.Config{
			Username:   c.TwitchUsername,
			OAuthToken: c.TwitchToken,
			Channels:   c.TwitchChannels,
		})
		twitchAd.SetHandler(uc.Handle)
		multiOut.Register(domain.PlatformTwitch, twitchAd)
		run("twitch adapter", twitchAd.Start)
	}

	if c.KickConfigured() {
		kickAd := kickadapter.NewAdapter(kickadapter.Config{
			AccessToken:       c.KickToken,
			BroadcasterUserID: c.KickBroadcasterUserID,
			ChatroomID:        c.KickChatroomID,
		})
		kickAd.SetHandler(uc.Handle)
		multiOut.Register(domain.PlatformKick, kickAd)
		run("kick adapter", kickAd.Start)
	}

	log.Printf("esbBot started (prefix %q, platforms %v)", router.Prefix(), multiOut.Platforms())

	<-ctx.Done()
	wg.Wait()

	log.Println("esbBot stopped.")
}
