package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/adrg/xdg"
)

var (
	cfgFile = "blup-chess/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	LightSquare  int `json:"light_square"`
	DarkSquare   int `json:"dark_square"`
	WhitePiece   int `json:"white_piece"`
	BlackPiece   int `json:"black_piece"`
	CursorBG     int `json:"cursor_bg"`
	SelectedBG   int `json:"selected_bg"`
	LastPlayedBG int `json:"last_played_bg"`
	CheckBG      int `json:"check_bg"`
	TargetFG     int `json:"target_fg"`
}

// ConfigSymbols holds the glyphs for pawn, knight, bishop, rook, queen and king, in that order.
type ConfigSymbols struct {
	White string `json:"white"`
	Black string `json:"black"`
}

type Theme struct {
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg"`
	ShowTargets              bool          `json:"show_targets"`
	Colors                   ConfigColors  `json:"colors"`
	Symbols                  ConfigSymbols `json:"symbols"`
}

// AIConfig holds the computer opponent's search settings.
type AIConfig struct {
	Depth       int   `json:"depth"`
	ThinkTimeMs int   `json:"think_time_ms"` // 0 = bounded by depth only
	Seed        int64 `json:"seed"`          // 0 = seed from the clock
}

// GameDefaults are used by the setup screen and quick start.
type GameDefaults struct {
	PlayerColor string `json:"player_color"` // "white" or "black"
	VsComputer  bool   `json:"vs_computer"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	Path  string `json:"path"` // empty = XDG state dir
	Level string `json:"level"`
}

type Config struct {
	Theme Theme        `json:"theme"`
	AI    AIConfig     `json:"ai"`
	Game  GameDefaults `json:"game"`
	Log   LogConfig    `json:"log"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, set := range []string{c.Theme.Symbols.White, c.Theme.Symbols.Black} {
		if utf8.RuneCountInString(set) != 6 {
			return &InvalidConfig{"piece symbols need exactly 6 characters (pawn, knight, bishop, rook, queen, king)"}
		}
		for _, r := range set {
			if r < 32 || (r >= 127 && r <= 159) {
				return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
			}
		}
	}
	if c.AI.Depth < 1 || c.AI.Depth > MaxDepth {
		return &InvalidConfig{fmt.Sprintf("ai depth must be between 1 and %d", MaxDepth)}
	}
	if c.AI.ThinkTimeMs < 0 {
		return &InvalidConfig{"ai think time cannot be negative"}
	}
	if c.Game.PlayerColor != "white" && c.Game.PlayerColor != "black" {
		return &InvalidConfig{fmt.Sprintf("player color must be white or black, got %q", c.Game.PlayerColor)}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(configReader, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
