package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"snake-pilot/config"
	"snake-pilot/session"
	"snake-pilot/ui/scene"
	"snake-pilot/ui/term"
)

func main() {
	cfg, err := config.Parse("snakepilot-tui", os.Args[1:], nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	// The screen owns stdout, so logs go to a file next to the stats.
	logFile, err := os.OpenFile("snakepilot.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := session.NewLogger(cfg, logFile)

	s, err := session.Open(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create screen")
	}
	if err := screen.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to init screen")
	}
	renderer := term.NewRenderer(screen)

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	timer := time.NewTimer(s.Interval())
	defer timer.Stop()

loop:
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				action, dir := term.KeyAction(ev)
				switch action {
				case term.Quit:
					break loop
				case term.Pause:
					s.TogglePause()
				case term.TogglePilot:
					s.TogglePilot()
				case term.Restart:
					s.Restart()
				case term.Steer:
					s.Game.Steer(dir)
				}
			}
		case <-timer.C:
			s.Tick()
			timer.Reset(s.Interval())
		}
		renderer.Draw(scene.Build(s.Game))
	}

	close(quit)
	screen.Fini()
	if err := s.Close(); err != nil {
		log.Error().Err(err).Msg("failed to save session")
	}
}
