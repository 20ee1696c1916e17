// Package term draws a scene in a terminal with tcell.
package term

import (
	"github.com/gdamore/tcell/v2"

	"snake-pilot/game/types"
	"snake-pilot/ui/scene"
)

// cellWidth is the number of columns per board cell, so cells look square.
const cellWidth = 2

var (
	defStyle    = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	boxStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	wrapStyle   = tcell.StyleDefault.Foreground(tcell.ColorLightCyan)
	bodyStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	tailStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	headStyle   = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	foodStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	targetStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	dangerStyle = tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	warnStyle   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
)

var glyphs = map[scene.Kind]struct {
	r     rune
	style tcell.Style
}{
	scene.Empty:      {' ', defStyle},
	scene.Body:       {tcell.RuneBlock, bodyStyle},
	scene.Tail:       {tcell.RuneBlock, tailStyle},
	scene.Head:       {tcell.RuneDiamond, headStyle},
	scene.Food:       {'#', foodStyle},
	scene.TargetFood: {'@', targetStyle},
	scene.DangerFood: {'x', dangerStyle},
}

type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(s tcell.Screen) *Renderer {
	s.SetStyle(defStyle)
	return &Renderer{screen: s}
}

// Origin is the screen position of board cell (0,0).
func Origin() (int, int) {
	return 1, 1
}

// Draw renders the board inside a frame with the status lines to its right.
func (r *Renderer) Draw(s scene.Scene) {
	r.screen.Clear()

	ox, oy := Origin()
	style := boxStyle
	if s.Toroidal {
		style = wrapStyle
	}
	drawBox(r.screen, ox-1, oy-1, ox+s.Width*cellWidth, oy+s.Height, style)

	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			g := glyphs[s.At(x, y)]
			for i := 0; i < cellWidth; i++ {
				r.screen.SetContent(ox+x*cellWidth+i, oy+y, g.r, nil, g.style)
			}
		}
	}

	panelX := ox + s.Width*cellWidth + 3
	for i, line := range s.Lines {
		style := textStyle
		if (i == 3 && s.Status.Hunger > 0) || (i == 4 && s.Status.Risk > 0) {
			style = warnStyle
		}
		drawText(r.screen, panelX, oy+i, style, line)
	}
	drawText(r.screen, panelX, oy+len(s.Lines)+1, textStyle, "arrows steer, a pilot")
	drawText(r.screen, panelX, oy+len(s.Lines)+2, textStyle, "space pause, r restart, q quit")
	if s.Status.Over {
		drawText(r.screen, ox+1, oy+s.Height/2, targetStyle, "GAME OVER")
	}
	r.screen.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func drawBox(s tcell.Screen, x1, y1, x2, y2 int, style tcell.Style) {
	for col := x1; col <= x2; col++ {
		s.SetContent(col, y1, tcell.RuneHLine, nil, style)
		s.SetContent(col, y2, tcell.RuneHLine, nil, style)
	}
	for row := y1 + 1; row < y2; row++ {
		s.SetContent(x1, row, tcell.RuneVLine, nil, style)
		s.SetContent(x2, row, tcell.RuneVLine, nil, style)
	}
	s.SetContent(x1, y1, tcell.RuneULCorner, nil, style)
	s.SetContent(x2, y1, tcell.RuneURCorner, nil, style)
	s.SetContent(x1, y2, tcell.RuneLLCorner, nil, style)
	s.SetContent(x2, y2, tcell.RuneLRCorner, nil, style)
}

// Action is what a key press asks the viewer to do.
type Action int

const (
	NoAction Action = iota
	Quit
	Pause
	TogglePilot
	Restart
	Steer
)

var key2Dir = map[tcell.Key]types.Direction{
	tcell.KeyLeft:  types.Left,
	tcell.KeyRight: types.Right,
	tcell.KeyUp:    types.Up,
	tcell.KeyDown:  types.Down,
}

// KeyAction maps a key event to an action. The direction is set for Steer.
func KeyAction(ev *tcell.EventKey) (Action, types.Direction) {
	if d, ok := key2Dir[ev.Key()]; ok {
		return Steer, d
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Quit, types.None
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return Quit, types.None
		case ' ':
			return Pause, types.None
		case 'a':
			return TogglePilot, types.None
		case 'r':
			return Restart, types.None
		}
	}
	return NoAction, types.None
}
