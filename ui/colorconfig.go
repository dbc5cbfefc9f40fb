package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"blup-chess/config"
	"blup-chess/types"
)

// ColorConfigUI provides a square color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	selectedLight int
	selectedDark  int
	editingDark   bool // true = editing dark squares, false = light squares
}

type paletteEntry struct {
	code int
	name string
}

var lightColors = []paletteEntry{
	{230, "Light Cream"},
	{229, "Pale Yellow"},
	{223, "Peach"},
	{187, "Wheat"},
	{188, "Light Beige"},
	{194, "Mint"},
	{195, "Ice"},
	{252, "Light Gray"},
	{250, "Gray"},
	{181, "Dusty Rose"},
}

var darkColors = []paletteEntry{
	{101, "Olive Gray"},
	{65, "Sage"},
	{29, "Sea Green"},
	{22, "Dark Green"},
	{94, "Saddle Brown"},
	{130, "Dark Orange"},
	{136, "Dark Brown"},
	{24, "Dark Cyan"},
	{60, "Slate"},
	{240, "Dark Gray"},
}

// previewBoard is a short opening drawn in the preview.
var previewBoard = func() types.Board {
	b := types.NewStandardBoard()
	b.Set(types.Square{Row: 6, Col: 4}, types.NoPiece)
	b.Set(types.Square{Row: 4, Col: 4}, types.Piece{Color: types.White, Kind: types.Pawn})
	b.Set(types.Square{Row: 1, Col: 4}, types.NoPiece)
	b.Set(types.Square{Row: 3, Col: 4}, types.Piece{Color: types.Black, Kind: types.Pawn})
	return b
}()

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:           cfg,
		onDone:        onDone,
		selectedLight: cfg.Theme.Colors.LightSquare,
		selectedDark:  cfg.Theme.Colors.DarkSquare,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.colorList.SetMainTextColor(MenuColors.Label)
	cc.colorList.SetSelectedBackgroundColor(MenuColors.ButtonFocus)

	cc.populateColorList()

	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		entries := cc.entries()
		if index < 0 || index >= len(entries) {
			return
		}
		if cc.editingDark {
			cc.selectedDark = entries[index].code
		} else {
			cc.selectedLight = entries[index].code
		}
	})

	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.cfg.Theme.Colors.LightSquare = cc.selectedLight
		cc.cfg.Theme.Colors.DarkSquare = cc.selectedDark
		if err := cc.cfg.Save(); err != nil {
			cc.preview.SetTitle(fmt.Sprintf(" Save failed: %v ", err))
			return
		}
		if !cc.editingDark {
			cc.editingDark = true
			cc.populateColorList()
			return
		}
		cc.editingDark = false
		cc.populateColorList()
		onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) entries() []paletteEntry {
	if cc.editingDark {
		return darkColors
	}
	return lightColors
}

// populateColorList fills the list with the colors for the square shade being edited.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	current := cc.selectedLight
	cc.colorList.SetTitle(" Light Squares (Tab: dark) ")
	if cc.editingDark {
		current = cc.selectedDark
		cc.colorList.SetTitle(" Dark Squares (Tab: light) ")
	}
	for i, c := range cc.entries() {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range cc.entries() {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if width < 8*cellWidth+4 || height < 11 {
		return x, y, width, height
	}
	light := tcell.PaletteColor(cc.selectedLight)
	dark := tcell.PaletteColor(cc.selectedDark)
	whiteFG := tcell.PaletteColor(cc.cfg.Theme.Colors.WhitePiece)
	blackFG := tcell.PaletteColor(cc.cfg.Theme.Colors.BlackPiece)
	white := []rune(cc.cfg.Theme.Symbols.White)
	black := []rune(cc.cfg.Theme.Symbols.Black)

	startX := x + 2
	startY := y + 1
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			bg := dark
			if (row+col)%2 == 0 {
				bg = light
			}
			p := previewBoard[row][col]
			r, fg := ' ', whiteFG
			if !p.Empty() {
				if p.Color == types.White {
					r = white[p.Kind-types.Pawn]
				} else {
					r, fg = black[p.Kind-types.Pawn], blackFG
				}
			}
			drawSquare(screen, tcell.StyleDefault.Background(bg).Foreground(fg), r, col, row, startX, startY)
		}
	}

	info := fmt.Sprintf("Light: %d  Dark: %d", cc.selectedLight, cc.selectedDark)
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+9, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between light and dark square editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingDark = !cc.editingDark
	cc.populateColorList()
}
