package main

import (
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-pilot/config"
	"snake-pilot/game/types"
	"snake-pilot/session"
	"snake-pilot/ui"
	"snake-pilot/ui/scene"
)

var key2Dir = map[int32]types.Direction{
	rl.KeyLeft:  types.Left,
	rl.KeyRight: types.Right,
	rl.KeyUp:    types.Up,
	rl.KeyDown:  types.Down,
}

func main() {
	cfg, err := config.Parse("snakepilot", os.Args[1:], nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := session.NewLogger(cfg, os.Stderr)

	s, err := session.Open(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session")
	}

	rl.InitWindow(1280, 800, "Snake Pilot")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	renderer := ui.NewRenderer()
	lastUpdate := time.Now()

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}
		if rl.IsWindowResized() {
			renderer.UpdateDimensions()
		}
		switch {
		case rl.IsKeyPressed(rl.KeySpace):
			s.TogglePause()
		case rl.IsKeyPressed(rl.KeyA):
			s.TogglePilot()
		case rl.IsKeyPressed(rl.KeyR):
			s.Restart()
		}
		for key, dir := range key2Dir {
			if rl.IsKeyPressed(key) {
				s.Game.Steer(dir)
			}
		}

		if time.Since(lastUpdate) >= s.Interval() {
			s.Tick()
			lastUpdate = time.Now()
		}
		renderer.Draw(scene.Build(s.Game))
	}

	if err := s.Close(); err != nil {
		log.Error().Err(err).Msg("failed to save session")
	}
}
