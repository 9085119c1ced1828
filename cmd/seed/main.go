// Command seed loads sample items through the item service. With -clean it
// first empties the item tables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/ghuser/itemtracker/pkg/app"
	"github.com/ghuser/itemtracker/pkg/config"
	"github.com/ghuser/itemtracker/pkg/database"
	"github.com/ghuser/itemtracker/pkg/logger"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
	"github.com/ghuser/itemtracker/services/item/infrastructure/persistence/postgres"
)

func main() {
	var (
		clean bool
		count int
		seed  uint64
	)
	flag.BoolVar(&clean, "clean", false, "Delete every item before seeding")
	flag.IntVar(&count, "count", 50, "Number of sample items to create")
	flag.Uint64Var(&seed, "seed", 0, "Random seed (0 picks one at random)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg).With("component", "seed")

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close() //nolint:errcheck

	a := &app.Application{Db: pool, Logger: log, Config: cfg}
	svc := appsvcs.New(a).Item

	if clean {
		if _, err := postgres.NewItemRepository(a.Db, a.Logger).Purge(ctx); err != nil {
			log.Error("clean failed", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: deferred close is best-effort
		}
	}

	inputs := sampleItems(gofakeit.New(seed), count, time.Now())
	created, skipped, err := seedItems(ctx, svc, inputs, log)
	if err != nil {
		log.Error("seed failed", "error", err, "created", created)
		os.Exit(1)
	}
	log.Info("seed complete", "created", created, "skipped", skipped)
}

// seedItems creates each input, skipping item numbers that already exist.
func seedItems(ctx context.Context, svc *appsvcs.ItemService, inputs []appsvcs.CreateItemInput, log logger.Logger) (created, skipped int, err error) {
	for _, in := range inputs {
		_, err := svc.Create(ctx, in)
		switch {
		case err == nil:
			created++
		case errors.Is(err, itemdomain.ErrItemAlreadyExists):
			skipped++
			log.DebugContext(ctx, "item exists, skipping", "item_number", in.ItemNumber)
		default:
			return created, skipped, fmt.Errorf("seed %s: %w", in.ItemNumber, err)
		}
	}
	return created, skipped, nil
}
