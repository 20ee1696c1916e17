package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-pilot/game/types"
	"snake-pilot/ui/scene"
)

const (
	maxScores     = 100 // Maximum number of scores to show in graph
	borderPadding = 10  // Padding around game area
)

var (
	snakeColor  = rl.Color{R: 46, G: 204, B: 113, A: 255}
	headColor   = rl.Color{R: 60, G: 255, B: 147, A: 255}
	foodColor   = rl.Red
	targetColor = rl.Gold
	dangerColor = rl.Color{R: 120, G: 20, B: 20, A: 255}
	wrapColor   = rl.SkyBlue
)

type Renderer struct {
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	graphHeight     int32
	graphWidth      int32
	gameWidth       int32
	gameHeight      int32
	statsPanel      int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	// The status panel takes a quarter of the window.
	r.statsPanel = r.screenWidth / 4
	r.gameWidth = r.screenWidth - r.statsPanel
	r.gameHeight = r.screenHeight

	r.graphWidth = r.statsPanel - 20
	r.graphHeight = r.screenHeight / 5
}

func (r *Renderer) Draw(s scene.Scene) {
	r.UpdateDimensions()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := min(r.screenHeight/40, r.statsPanel/14)
	lineHeight := min(r.screenHeight/30, r.statsPanel/11)

	availableWidth := r.gameWidth - (borderPadding * 2)
	availableHeight := r.gameHeight - (borderPadding * 2)
	r.cellSize = min(availableWidth/int32(s.Width), availableHeight/int32(s.Height))

	r.totalGridWidth = r.cellSize * int32(s.Width)
	r.totalGridHeight = r.cellSize * int32(s.Height)
	r.offsetX = borderPadding
	r.offsetY = (r.screenHeight - r.totalGridHeight) / 2

	// A blue border marks a board whose edges wrap.
	border := rl.DarkGray
	if s.Toroidal {
		border = wrapColor
	}
	rl.DrawRectangleLines(r.offsetX-2, r.offsetY-2, r.totalGridWidth+4, r.totalGridHeight+4, border)

	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			r.drawCell(x, y, s.At(x, y))
		}
	}
	if s.Width > 0 && s.Height > 0 && !s.Status.Over {
		r.drawHeading(s.Head, s.Heading)
	}

	if s.Status.Over {
		text := "Game Over! Press R to restart"
		textWidth := rl.MeasureText(text, fontSize*2)
		rl.DrawText(text,
			r.offsetX+(r.totalGridWidth-textWidth)/2,
			r.offsetY+r.totalGridHeight/2-fontSize,
			fontSize*2, rl.White)
	}

	r.drawStatsPanel(s, fontSize, lineHeight)
	rl.EndDrawing()
}

func (r *Renderer) cellOrigin(x, y int) (int32, int32) {
	return r.offsetX + int32(x)*r.cellSize, r.offsetY + int32(y)*r.cellSize
}

func (r *Renderer) drawCell(x, y int, kind scene.Kind) {
	px, py := r.cellOrigin(x, y)
	switch kind {
	case scene.Empty:
		rl.DrawRectangleLines(px, py, r.cellSize, r.cellSize, rl.Color{R: 30, G: 30, B: 30, A: 255})
	case scene.Body:
		rl.DrawRectangle(px, py, r.cellSize, r.cellSize, snakeColor)
	case scene.Tail:
		rl.DrawRectangle(px, py, r.cellSize, r.cellSize, rl.White)
	case scene.Head:
		rl.DrawRectangle(px, py, r.cellSize, r.cellSize, headColor)
	case scene.Food:
		rl.DrawRectangle(px+1, py+1, r.cellSize-2, r.cellSize-2, foodColor)
	case scene.TargetFood:
		rl.DrawRectangle(px, py, r.cellSize, r.cellSize, targetColor)
		rl.DrawRectangleLines(px, py, r.cellSize, r.cellSize, rl.White)
	case scene.DangerFood:
		rl.DrawRectangle(px+1, py+1, r.cellSize-2, r.cellSize-2, dangerColor)
	}
}

// drawHeading puts a triangle on the head pointing where the snake moves.
func (r *Renderer) drawHeading(head types.Point, heading types.Direction) {
	headX, headY := r.cellOrigin(head.X, head.Y)
	halfCell := r.cellSize / 2
	switch heading {
	case types.Right:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Yellow)
	case types.Left:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Yellow)
	case types.Down:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Yellow)
	case types.Up:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Yellow)
	}
}

func (r *Renderer) drawStatsPanel(s scene.Scene, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5
	statsY := int32(10)

	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)
	rl.DrawText("Snake Pilot", statsX, statsY, fontSize, rl.White)
	statsY += lineHeight * 3 / 2

	for i, line := range s.Lines {
		color := rl.White
		switch {
		case i == 3 && s.Status.Hunger > 0:
			color = rl.Orange
		case i == 4 && s.Status.Risk > 0:
			color = rl.Red
		}
		rl.DrawText(line, statsX+5, statsY, fontSize, color)
		statsY += lineHeight
	}

	statsY += lineHeight / 2
	rl.DrawText("Keys: space pause, A pilot, R restart", statsX, statsY, fontSize*4/5, rl.LightGray)

	r.drawScoreGraph(s.History, statsX, fontSize)
}

// drawScoreGraph plots the most recent finished game scores.
func (r *Renderer) drawScoreGraph(history []int, graphX, fontSize int32) {
	graphHeight := r.graphHeight
	graphY := r.screenHeight - graphHeight - fontSize*2

	rl.DrawRectangleLines(graphX, graphY, r.graphWidth, graphHeight, rl.White)
	rl.DrawText(fmt.Sprintf("Scores (%d games)", len(history)), graphX, graphY-fontSize-5, fontSize, rl.White)

	if len(history) > maxScores {
		history = history[len(history)-maxScores:]
	}
	if len(history) < 2 {
		return
	}

	maxScore := 1
	total := 0
	for _, score := range history {
		maxScore = max(maxScore, score)
		total += score
	}
	y := func(score float32) int32 {
		return graphY + graphHeight - int32(float32(graphHeight)*score/float32(maxScore))
	}
	for j := 1; j < len(history); j++ {
		x1 := graphX + int32(float32(r.graphWidth)*float32(j-1)/float32(maxScores))
		x2 := graphX + int32(float32(r.graphWidth)*float32(j)/float32(maxScores))
		rl.DrawLine(x1, y(float32(history[j-1])), x2, y(float32(history[j])), snakeColor)
	}

	// Dashed average line.
	avgY := y(float32(total) / float32(len(history)))
	for x := graphX; x < graphX+r.graphWidth; x += 5 {
		rl.DrawLine(x, avgY, x+2, avgY, rl.Yellow)
	}
}
