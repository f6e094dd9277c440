package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/deep6ix/gillespie/internal/config"
	"github.com/deep6ix/gillespie/network"
	"github.com/deep6ix/gillespie/ssa"
)

const (
	ScreenWidth  = 800
	ScreenHeight = 600
	// SamplesPerTick bounds how many buffered samples Update drains per
	// frame, the same role the teacher's StepsPerTick played for
	// Pond.Step — except here the SSA driver runs on its own goroutine,
	// so this just throttles how fast the chart catches up after a
	// frame drop.
	SamplesPerTick = 50
	historyLen     = ScreenWidth - 140
)

type sample struct {
	t float64
	x []int64
}

// Game implements ebiten.Game and drives one SSA run on a background
// goroutine, descended from the teacher's Game/Pond split: Update
// replaces Pond.Step with draining live samples off a channel, Draw
// replaces the teacher's per-molecule bar with a scrolling line chart.
type Game struct {
	names    []string
	history  [][]int64 // per-species ring buffer, most recent last
	lastT    float64
	lastDone bool
	lastErr  error
	ticks    int

	samples chan sample
	done    chan struct{}
	errc    chan error
}

// NewGame starts net running under opts on a background goroutine and
// returns a Game ready for ebiten.RunGame.
func NewGame(net *network.Network, opts config.RunOptions) *Game {
	names := net.SpeciesNames()
	g := &Game{
		names:   names,
		history: make([][]int64, len(names)),
		samples: make(chan sample, 256),
		done:    make(chan struct{}),
		errc:    make(chan error, 1),
	}

	go func() {
		defer close(g.done)
		_, err := ssa.Run(ssa.Config{
			Network:  net,
			Tmax:     opts.Tmax,
			NBSteps:  opts.NBSteps,
			Params:   opts.Params,
			Seed:     opts.Seed,
			Sparse:   opts.Sparse,
			VarNames: opts.VarNames,
			OnSample: func(t float64, names []string, x []int64) {
				xc := make([]int64, len(x))
				copy(xc, x)
				g.samples <- sample{t: t, x: xc}
			},
		})
		if err != nil {
			g.errc <- err
		}
	}()

	return g
}

func (g *Game) Update() error {
	for i := 0; i < SamplesPerTick; i++ {
		select {
		case s := <-g.samples:
			g.lastT = s.t
			for i, v := range s.x {
				g.history[i] = append(g.history[i], v)
				if len(g.history[i]) > historyLen {
					g.history[i] = g.history[i][1:]
				}
			}
		case err := <-g.errc:
			g.lastErr = err
		case <-g.done:
			g.lastDone = true
		default:
			g.ticks++
			return nil
		}
	}
	g.ticks++
	return nil
}

var palette = []color.RGBA{
	{255, 99, 71, 255},
	{100, 200, 255, 255},
	{0, 255, 0, 255},
	{255, 255, 0, 255},
	{200, 100, 255, 255},
	{255, 150, 0, 255},
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	text.Draw(screen, "Gillespie SSA - live trajectory", basicfont.Face7x13, 20, 20, color.White)

	status := fmt.Sprintf("t = %.4g  ticks = %d", g.lastT, g.ticks)
	if g.lastDone {
		status += "  (done)"
	}
	if g.lastErr != nil {
		status += fmt.Sprintf("  error: %v", g.lastErr)
	}
	text.Draw(screen, status, basicfont.Face7x13, 20, 38, color.RGBA{180, 180, 180, 255})

	legendY := 56
	for i, name := range g.names {
		c := palette[i%len(palette)]
		text.Draw(screen, name, basicfont.Face7x13, 20+i*90, legendY, c)
	}

	chartTop := float32(80)
	chartHeight := float32(ScreenHeight - 100)
	chartLeft := float32(20)

	maxVal := int64(1)
	for _, series := range g.history {
		for _, v := range series {
			if v > maxVal {
				maxVal = v
			}
		}
	}

	for i, series := range g.history {
		if len(series) < 2 {
			continue
		}
		c := palette[i%len(palette)]
		for x := 1; x < len(series); x++ {
			y0 := chartTop + chartHeight*(1-float32(series[x-1])/float32(maxVal))
			y1 := chartTop + chartHeight*(1-float32(series[x])/float32(maxVal))
			vector.StrokeLine(screen,
				chartLeft+float32(x-1), y0,
				chartLeft+float32(x), y1,
				1, c, true)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return ScreenWidth, ScreenHeight
}
