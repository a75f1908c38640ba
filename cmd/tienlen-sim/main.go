// Command tienlen-sim plays AI-only games and prints how each persona placed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"tienlen/internal/sim"
)

func main() {
	var (
		games    = flag.Int("games", 200, "number of games to play")
		tables   = flag.Int("tables", 4, "rooms playing concurrently")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		personas = flag.String("personas", "", "comma separated personas; every registered persona when empty")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	var names []string
	if *personas != "" {
		names = strings.Split(*personas, ",")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := sim.Run(ctx, sim.Options{Games: *games, Tables: *tables, Personas: names, Seed: *seed}, log)
	if err != nil {
		log.WithError(err).Fatal("simulation failed")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "persona\tgames\twins\tavg pts\t1st\t2nd\t3rd\t4th\tbombs\t")
	for _, p := range report.Personas {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%d\t%d\t%d\t%d\t%d\t\n",
			p.Persona, p.SeatGames, p.Wins, p.AvgPoints(),
			p.Placements[1], p.Placements[2], p.Placements[3], p.Placements[4], p.Bombs)
	}
	w.Flush()
	log.WithField("seed", *seed).Infof("%d games in %s", report.Games, report.Elapsed.Round(time.Millisecond))
}
