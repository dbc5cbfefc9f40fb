package config

// MaxDepth is the deepest search the config accepts.
const MaxDepth = 8

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawLastPlayedBackground: true,
		ShowTargets:              true,
		Colors: ConfigColors{
			LightSquare:  187,
			DarkSquare:   101,
			WhitePiece:   255,
			BlackPiece:   232,
			CursorBG:     4,
			SelectedBG:   6,
			LastPlayedBG: 143,
			CheckBG:      167,
			TargetFG:     22,
		},
		Symbols: ConfigSymbols{
			White: "♟♞♝♜♛♚",
			Black: "♟♞♝♜♛♚",
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		AI: AIConfig{
			Depth:       3,
			ThinkTimeMs: 5000,
		},
		Game: GameDefaults{
			PlayerColor: "white",
			VsComputer:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
