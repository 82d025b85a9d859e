package theme

import (
	"os"

	"github.com/grovetools/shelf/config"
)

// Nerd Font Icons (Private Constants)
const (
	nerdIconLibrary    = "󰂺" // md-book_open_variant (U+F00BA)
	nerdIconCollection = "" // cod-folder (U+EA83)
	nerdIconItem       = "󰈔" // md-file (U+F0214)
	nerdIconUnsorted   = "󰚌" // md-inbox (U+F068C)
	nerdIconChecked    = "󰱒" // md-checkbox_outline (U+F0C52)
	nerdIconUnchecked  = "󰄱" // md-checkbox_blank_outline (U+F0131)
	nerdIconExpanded   = "" // oct-chevron_down (U+F47C)
	nerdIconCollapsed  = "" // oct-chevron_right (U+F460)
	nerdIconSuccess    = "󰄬" // md-check (U+F012C)
	nerdIconError      = "" // cod-error (U+EA87)
	nerdIconWarning    = "" // fa-warning (U+F071)
	nerdIconInfo       = "󰋼" // md-information (U+F02FC)
	nerdIconArrow      = "󰁔" // md-arrow_right (U+F0054)
	nerdIconBullet     = "" // oct-dot_fill (U+F444)
)

// ASCII Fallback Icons (Private Constants)
const (
	asciiIconLibrary    = "[L]"
	asciiIconCollection = "◆"
	asciiIconItem       = "·"
	asciiIconUnsorted   = "○"
	asciiIconChecked    = "[x]"
	asciiIconUnchecked  = "[ ]"
	asciiIconExpanded   = "▼"
	asciiIconCollapsed  = "▶"
	asciiIconSuccess    = "✓"
	asciiIconError      = "✗"
	asciiIconWarning    = "⚠"
	asciiIconInfo       = "ℹ"
	asciiIconArrow      = "→"
	asciiIconBullet     = "•"
)

// Public Icon Variables
var (
	IconLibrary    string
	IconCollection string
	IconItem       string
	IconUnsorted   string
	IconChecked    string
	IconUnchecked  string
	IconExpanded   string
	IconCollapsed  string
	IconSuccess    string
	IconError      string
	IconWarning    string
	IconInfo       string
	IconArrow      string
	IconBullet     string
)

// init function determines which icon set to use
func init() {
	useASCII := false

	// 1. Check environment variable first
	if os.Getenv("SHELF_ICONS") == "ascii" {
		useASCII = true
	} else {
		// 2. Check config file
		cfg, err := config.LoadDefault()
		if err == nil {
			var tuiCfg struct {
				Icons string `yaml:"icons"`
			}
			if err := cfg.UnmarshalExtension("tui", &tuiCfg); err == nil && tuiCfg.Icons == "ascii" {
				useASCII = true
			}
		}
	}

	if useASCII {
		IconLibrary = asciiIconLibrary
		IconCollection = asciiIconCollection
		IconItem = asciiIconItem
		IconUnsorted = asciiIconUnsorted
		IconChecked = asciiIconChecked
		IconUnchecked = asciiIconUnchecked
		IconExpanded = asciiIconExpanded
		IconCollapsed = asciiIconCollapsed
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconWarning = asciiIconWarning
		IconInfo = asciiIconInfo
		IconArrow = asciiIconArrow
		IconBullet = asciiIconBullet
	} else {
		IconLibrary = nerdIconLibrary
		IconCollection = nerdIconCollection
		IconItem = nerdIconItem
		IconUnsorted = nerdIconUnsorted
		IconChecked = nerdIconChecked
		IconUnchecked = nerdIconUnchecked
		IconExpanded = nerdIconExpanded
		IconCollapsed = nerdIconCollapsed
		IconSuccess = nerdIconSuccess
		IconError = nerdIconError
		IconWarning = nerdIconWarning
		IconInfo = nerdIconInfo
		IconArrow = nerdIconArrow
		IconBullet = nerdIconBullet
	}
}
