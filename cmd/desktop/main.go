package main

import (
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"gocalc/pkg/calc"
	"gocalc/pkg/grid"
)

const (
	screenWidth  = 512
	screenHeight = 384

	// basicfont.Face7x13 cell size
	charWidth  = 7
	charHeight = 13

	cols       = screenWidth / charWidth
	maxHistory = 64
	maxInput   = 256
)

var (
	face = text.NewGoXFace(basicfont.Face7x13)

	inputColor  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	resultColor = color.RGBA{0x60, 0xe0, 0x60, 0xff}
	errorColor  = color.RGBA{0xff, 0x50, 0x50, 0xff}
	dimColor    = color.RGBA{0x90, 0x90, 0x90, 0xff}
)

// entry is one evaluated expression shown in the history list.
type entry struct {
	expr   string
	output string
	failed bool
}

type Game struct {
	input   []rune
	history []entry
	frame   int
}

func (g *Game) typeRunes(rs []rune) {
	for _, r := range rs {
		if r < ' ' || len(g.input) >= maxInput {
			continue
		}
		g.input = append(g.input, r)
	}
}

func (g *Game) backspace() {
	if len(g.input) > 0 {
		g.input = g.input[:len(g.input)-1]
	}
}

func (g *Game) clear() {
	g.input = g.input[:0]
}

// submit evaluates the current input and records the outcome.
func (g *Game) submit() {
	expr := strings.TrimSpace(string(g.input))
	if expr == "" {
		return
	}

	e := entry{expr: expr}
	v, err := calc.Evaluate(expr)
	if err != nil {
		e.output = err.Error()
		e.failed = true
	} else {
		e.output = calc.FormatResult(v)
	}

	g.history = append(g.history, e)
	if len(g.history) > maxHistory {
		g.history = g.history[len(g.history)-maxHistory:]
	}
	g.clear()
}

func (g *Game) Update() error {
	g.frame++
	g.typeRunes(ebiten.AppendInputChars(nil))
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		g.submit()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.clear()
	}
	return nil
}

// historyRows flattens the history into wrapped display rows, oldest first.
func (g *Game) historyRows() ([]string, []color.Color) {
	var rows []string
	var colors []color.Color
	for _, e := range g.history {
		for _, r := range grid.Wrap("> "+e.expr, cols) {
			rows = append(rows, r)
			colors = append(colors, dimColor)
		}
		c := color.Color(resultColor)
		if e.failed {
			c = errorColor
		}
		for _, r := range grid.Wrap("  "+e.output, cols) {
			rows = append(rows, r)
			colors = append(colors, c)
		}
	}
	return rows, colors
}

func drawRow(screen *ebiten.Image, s string, row int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(0, float64(row*charHeight))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func (g *Game) Draw(screen *ebiten.Image) {
	totalRows := screenHeight / charHeight
	inputRows := grid.Wrap("> "+string(g.input), cols)
	historyRows := totalRows - len(inputRows) - 1

	rows, colors := g.historyRows()
	start := 0
	if len(rows) > historyRows {
		start = len(rows) - historyRows
	}
	for i, r := range grid.Tail(rows, historyRows) {
		drawRow(screen, r, i, colors[start+i])
	}

	base := totalRows - len(inputRows) - 1
	for i, r := range inputRows {
		drawRow(screen, r, base+i, inputColor)
	}

	// Blinking block cursor after the last typed character.
	if g.frame/30%2 == 0 {
		x, y := grid.GetGridCoords(len([]rune("> "+string(g.input))), cols)
		drawRow(screen, strings.Repeat(" ", x)+"_", base+y, inputColor)
	}

	ebitenutil.DebugPrintAt(screen, "Enter: evaluate  Esc: clear", 0, screenHeight-16)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("gocalc")

	game := &Game{}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
