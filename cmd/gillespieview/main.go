// Package main is gillespieview, a live Ebitengine viewer for a
// running Gillespie simulation (SPEC_FULL §4.12).
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/deep6ix/gillespie/internal/config"
)

func main() {
	networkPath := flag.String("network", "", "path to a network.toml file")
	runPath := flag.String("run", "", "path to a run.yaml file")
	flag.Parse()

	if *networkPath == "" {
		log.Fatal("gillespieview: -network is required")
	}

	net, err := config.LoadNetwork(*networkPath)
	if err != nil {
		log.Fatalf("gillespieview: %v", err)
	}

	opts, err := config.LoadRunOptions(*runPath, nil)
	if err != nil {
		log.Fatalf("gillespieview: %v", err)
	}
	if opts.Tmax <= 0 {
		opts.Tmax = 100
	}

	game := NewGame(net, *opts)

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Gillespie SSA - live trajectory")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
