// Command simulate runs seeded end-to-end battles and a breeding roll over
// a content directory. The same seed over the same content reproduces an
// identical transcript, which makes it useful for balance checks and for
// catching nondeterminism regressions.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/mkerrigan/wildbound/internal/config"
	"github.com/mkerrigan/wildbound/internal/content"
	"github.com/mkerrigan/wildbound/internal/game/battle"
	"github.com/mkerrigan/wildbound/internal/game/breeding"
	"github.com/mkerrigan/wildbound/internal/game/item"
	"github.com/mkerrigan/wildbound/internal/game/rng"
	"github.com/mkerrigan/wildbound/internal/game/species"
	"github.com/mkerrigan/wildbound/internal/game/stats"
	"github.com/mkerrigan/wildbound/internal/observability"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	store, err := content.Load(cfg.Content.Dir)
	if err != nil {
		return err
	}
	if err := store.VerifyReferences(); err != nil {
		return err
	}

	src := rng.NewLoggedSource(rng.NewSeededSource(cfg.Simulation.Seed), logger)
	engine := battle.NewEngine(store.Species, store.Abilities, store.Statuses, store.Items, src, logger)

	// Deterministic species ordering: registry iteration order must not
	// leak into the transcript.
	roster := store.Species.All()
	sort.Slice(roster, func(i, j int) bool { return roster[i].ID < roster[j].ID })
	if len(roster) == 0 {
		return fmt.Errorf("content has no species to simulate with")
	}
	device := firstCaptureDevice(store.Items)

	player, err := stats.NewPlayer("Sim")
	if err != nil {
		return err
	}
	logger.Info("simulation start",
		zap.Int64("seed", cfg.Simulation.Seed),
		zap.Int("battles", cfg.Simulation.Battles),
	)

	wins := 0
	for i := 0; i < cfg.Simulation.Battles; i++ {
		enemySpecies := roster[src.Intn(len(roster))]
		won, err := runBattle(engine, player, enemySpecies, cfg.Simulation.EnemyLevel, device, logger)
		if err != nil {
			return err
		}
		if won {
			wins++
		}
	}
	logger.Info("battles complete",
		zap.Int("wins", wins),
		zap.Int("losses", cfg.Simulation.Battles-wins),
	)

	return runBreeding(store, src, logger)
}

func firstCaptureDevice(items *item.Registry) *item.Item {
	all := items.All()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	for _, it := range all {
		if it.Kind == item.KindCaptureDevice {
			return it
		}
	}
	return nil
}

// runBattle fights one encounter with a trivial policy: attack every turn,
// except one capture attempt with the first device once the enemy is below
// half health.
func runBattle(engine *battle.Engine, player stats.PlayerCharacter, enemySpecies *species.Species, enemyLevel int, device *item.Item, logger *zap.Logger) (bool, error) {
	hero := battle.NewPlayerCombatant(player, nil)
	enemy := battle.NewWildCombatant(enemySpecies, enemyLevel)
	b, err := battle.New([]*battle.Combatant{hero}, []*battle.Combatant{enemy}, true)
	if err != nil {
		return false, err
	}

	triedCapture := false
	for b.State == battle.StateActive {
		actor := b.CurrentActor()
		act := battle.Action{Type: battle.ActionAttack}
		if actor == hero && device != nil && !triedCapture &&
			enemy.Stats.CurrentHP*2 < enemy.Stats.MaxHP && !enemy.IsOut() {
			act = battle.Action{Type: battle.ActionCapture, TargetID: enemy.ID, ItemID: device.ID}
			triedCapture = true
		}
		res, err := engine.Take(b, act)
		if err != nil {
			return false, err
		}
		if res.Kind == battle.ResultInvalid {
			return false, fmt.Errorf("simulation submitted invalid action: %s", res.Reason)
		}
	}

	won := b.State == battle.StateVictory
	fields := []zap.Field{
		zap.String("enemy", enemySpecies.ID),
		zap.String("outcome", b.State.String()),
		zap.Int("turns", b.TurnCount),
	}
	if won && b.Rewards != nil {
		fields = append(fields,
			zap.Int("experience", b.Rewards.Experience),
			zap.Int("gold", b.Rewards.Gold),
			zap.Bool("captured", b.Rewards.Captured != nil),
		)
	}
	logger.Info("battle finished", fields...)
	return won, nil
}

// runBreeding previews and commits one breeding roll between the first two
// compatible species found in the roster.
func runBreeding(store *content.Store, src rng.Source, logger *zap.Logger) error {
	roster := store.Species.All()
	sort.Slice(roster, func(i, j int) bool { return roster[i].ID < roster[j].ID })

	breeder := breeding.NewBreeder(store.Species, store.Breeding, src)
	for _, sp1 := range roster {
		for _, sp2 := range roster {
			p1, err := species.NewInstance(sp1, 5)
			if err != nil {
				return err
			}
			p2, err := species.NewInstance(sp2, 5)
			if err != nil {
				return err
			}
			pair, err := breeder.NewPair(p1, p2, nil)
			if err != nil {
				return err
			}
			if !breeder.CanBreed(pair) {
				continue
			}
			result, err := breeder.Execute(pair, p1, p2)
			if err != nil {
				return err
			}
			if result == nil {
				continue
			}
			logger.Info("breeding complete",
				zap.String("parent1", sp1.ID),
				zap.String("parent2", sp2.ID),
				zap.String("offspring", result.Offspring.SpeciesID),
				zap.Strings("traits", result.Offspring.Traits),
				zap.Bool("mutated", result.Mutated),
			)
			return nil
		}
	}
	logger.Info("no breedable pair in content; skipping breeding run")
	return nil
}
