// Command sweep runs headless soak sessions across the intensity and
// material grid and reports time-to-win statistics per combination. It is
// the tuning companion to the interactive game: changes to spray or
// particle parameters can be validated in seconds.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/sealant/config"
	"github.com/pthm-cable/sealant/game"
	"github.com/pthm-cable/sealant/systems"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	runs := flag.Int("runs", 5, "Sessions per intensity/material combination")
	maxTicks := flag.Int("max-ticks", 60*600, "Tick cap per session")
	out := flag.String("out", "sweep.csv", "Result CSV path")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	f, err := os.Create(*out)
	if err != nil {
		slog.Error("failed to create result file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	w.Write([]string{
		"intensity", "material", "runs", "wins",
		"win_sec_mean", "win_sec_p50", "impacts_mean", "dropped_mean",
	})

	for lvl := cfg.Spray.MinIntensity; lvl <= cfg.Spray.MaxIntensity; lvl++ {
		for m := range cfg.Materials {
			res := runCombo(lvl, m, *runs, *maxTicks)
			w.Write([]string{
				fmt.Sprintf("%d", lvl),
				cfg.Materials[m].Name,
				fmt.Sprintf("%d", *runs),
				fmt.Sprintf("%d", res.wins),
				fmt.Sprintf("%.2f", res.winSecMean),
				fmt.Sprintf("%.2f", res.winSecP50),
				fmt.Sprintf("%.1f", res.impactsMean),
				fmt.Sprintf("%.1f", res.droppedMean),
			})
			slog.Info("combo done",
				"intensity", lvl,
				"material", cfg.Materials[m].Name,
				"wins", res.wins,
				"win_sec_mean", res.winSecMean,
			)
		}
	}
}

type comboResult struct {
	wins        int
	winSecMean  float64
	winSecP50   float64
	impactsMean float64
	droppedMean float64
}

// runCombo runs n scripted sessions at a fixed intensity and material and
// aggregates their outcomes.
func runCombo(intensity, material, n, maxTicks int) comboResult {
	var res comboResult
	var winTimes, impacts, dropped []float64

	for run := 0; run < n; run++ {
		g := game.NewGameWithOptions(game.Options{
			Seed:           int64(1000*intensity + 100*material + run),
			Headless:       true,
			StatsWindowSec: 1e6, // effectively no window flushes during sweep runs
		})
		g.Session().SetIntensity(intensity)
		g.Session().SetMaterial(material)

		for t := 0; t < maxTicks; t++ {
			g.UpdateHeadless()
			if g.Session().Phase() == systems.PhaseWon {
				break
			}
		}

		if g.Session().Phase() == systems.PhaseWon {
			res.wins++
			winTimes = append(winTimes, g.Session().Elapsed())
		}
		impacts = append(impacts, float64(g.Session().Impacts()))
		dropped = append(dropped, float64(g.Session().Pool().Dropped()))
		g.Unload()
	}

	if len(winTimes) > 0 {
		res.winSecMean = stat.Mean(winTimes, nil)
		sort.Float64s(winTimes)
		res.winSecP50 = stat.Quantile(0.5, stat.Empirical, winTimes, nil)
	}
	res.impactsMean = stat.Mean(impacts, nil)
	res.droppedMean = stat.Mean(dropped, nil)

	return res
}
