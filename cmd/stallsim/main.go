// Command stallsim runs a scripted GobboMarket trading session against
// the core engine, logging every notification it produces.
package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gobbomarket/internal/catalog"
	"gobbomarket/internal/clock"
	"gobbomarket/internal/config"
	"gobbomarket/internal/customer"
	"gobbomarket/internal/events"
	"gobbomarket/internal/game"
	"gobbomarket/internal/ledger"
	"gobbomarket/internal/milestone"
	"gobbomarket/internal/reputation"
	"gobbomarket/internal/save"
)

func main() {
	var (
		backend     = flag.String("backend", "file", "save backend: file, sqlite, memory")
		dataDir     = flag.String("data", "data", "data directory for file/sqlite backends")
		catalogPath = flag.String("catalog", "", "optional catalog YAML override")
		seed        = flag.Int64("seed", 42, "rng seed for customer rolls")
		runFor      = flag.Duration("run", 90*time.Second, "how long to keep the stall open")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cat := catalog.Default()
	if *catalogPath != "" {
		loaded, err := catalog.Load(*catalogPath)
		if err != nil {
			slog.Error("failed to load catalog", "path", *catalogPath, "error", err)
			os.Exit(1)
		}
		cat = loaded
	}

	bal := config.FromEnv()
	clk := clock.RealClock{}
	sched := clock.RealScheduler{}
	bus := events.NewBus(clk)

	store, cleanup, err := openStore(*backend, *dataDir)
	if err != nil {
		slog.Error("failed to open save store", "backend", *backend, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	led := ledger.New(bus, clk, cat, bal)
	saves := save.NewManager(store, led, bus, clk, sched, logger)

	rng := rand.New(rand.NewSource(*seed))
	queue := customer.NewQueue(bus, clk, sched, cat, bal, led, rng)

	engine := game.Engine{
		Ledger:     led,
		Bus:        bus,
		Clock:      clk,
		Catalog:    cat,
		Balance:    bal,
		Customers:  queue,
		Saves:      saves,
		Milestones: milestone.NewChecker(led, milestone.Defaults()),
	}

	bus.SubscribeAll(func(ev events.Event) {
		slog.Info(string(ev.Type), "data", ev.Data)
	})

	if saves.Load() {
		slog.Info("session restored", "tier", led.CurrentTier(), "coins", led.Coins())
	} else {
		slog.Info("fresh session", "coins", led.Coins())
	}

	autosave := saves.AutoSave(time.Duration(bal.AutoSaveIntervalSec) * time.Second)
	defer autosave.Cancel()

	// Sell to whoever shows up, restocking as coins allow.
	bus.Subscribe(events.TypeCustomerArrived, func(ev events.Event) {
		arrived, ok := ev.Data.(events.CustomerArrived)
		if !ok {
			return
		}
		serveCustomer(engine, arrived.CustomerID)
	})

	queue.Start()
	defer queue.Stop()

	// Open with a little stock.
	for _, goodsID := range []string{"rusty_dagger", "bone_charm"} {
		if _, err := engine.BuyGoods(goodsID); err != nil {
			slog.Warn("restock failed", "goods", goodsID, "error", err)
		}
	}

	slog.Info("stall open", "duration", *runFor)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-time.After(*runFor):
	case <-sig:
		slog.Info("interrupted")
	}

	if saves.Save() {
		slog.Info("session saved", "coins", led.Coins(), "level", engine.ReputationLevel())
	}
}

func serveCustomer(engine game.Engine, customerID string) {
	cust, ok := engine.Customers.Get(customerID)
	if !ok {
		return
	}

	snap := engine.Ledger.Snapshot()
	for _, item := range snap.Inventory {
		goods, ok := engine.Catalog.GoodsByID(item.GoodsID)
		if !ok || goods.Category != cust.DesiredCategory {
			continue
		}
		res, err := engine.SellToCustomer(item.ID, customerID, 1.0, reputation.OutcomeSettle)
		if err != nil {
			slog.Warn("sale failed", "item", item.ID, "error", err)
			return
		}
		slog.Info("sold", "goods", item.GoodsID, "price", res.Quote.Price, "rep", res.ReputationGain)

		// Restock what just sold, if affordable and off cooldown.
		if !goods.Craftable {
			if _, err := engine.BuyGoods(item.GoodsID); err != nil {
				slog.Debug("restock skipped", "goods", item.GoodsID, "reason", err)
			}
		}
		return
	}
}

func openStore(backend, dataDir string) (save.Store, func(), error) {
	switch backend {
	case "sqlite":
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, nil, err
		}
		db, err := save.OpenSQLite(dataDir + "/gobbomarket.db")
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	case "memory":
		return save.NewMemoryStore(), func() {}, nil
	default:
		fs, err := save.NewFileStore(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}
}
