package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tsevere/dviz/internal/color"
	"github.com/tsevere/dviz/internal/fsmodel"
)

// SettingsAction is returned when the user changes a setting.
type SettingsAction int

const (
	SettingsNone              SettingsAction = iota
	SettingsToggleLegend                     // ShowLegend changed
	SettingsCycleTheme                       // Theme changed
	SettingsToggleOnlyDirs                   // OnlyDirectories changed
	SettingsMinSizeUp                        // MinSizeBytes increased
	SettingsMinSizeDown                      // MinSizeBytes decreased
	SettingsCycleSizePrefix                  // SizePrefix changed
	SettingsToggleMonitor                    // MonitorFilesystem changed
)

// minSizeSteps is the ladder SettingsMinSizeUp/Down walks through:
// zero (no filtering), 1 KiB, 1 MiB, 10 MiB, 100 MiB and 1 GiB.
var minSizeSteps = []uint64{0, 1 << 10, 1 << 20, 10 << 20, 100 << 20, 1 << 30}

// SettingsState holds runtime-modifiable settings and menu state,
// mirroring spec.md's §6 visibility filter and monitor/size-prefix
// configuration values.
type SettingsState struct {
	Open             bool
	ShowLegend       bool
	Theme            string // "dark", "light", "auto"
	OnlyDirectories  bool
	MinSizeBytes     uint64
	SizePrefix       fsmodel.SizePrefix
	MonitorFS        bool
	hoverIndex       int // which row is hovered (-1 = none)
}

// NewSettingsState creates settings from the initial config values.
func NewSettingsState(theme string, onlyDirectories bool, minSizeBytes uint64, sizePrefix fsmodel.SizePrefix, monitorFS bool, showLegend bool) *SettingsState {
	if theme == "" {
		theme = "auto"
	}
	return &SettingsState{
		ShowLegend:      showLegend,
		Theme:           theme,
		OnlyDirectories: onlyDirectories,
		MinSizeBytes:    minSizeBytes,
		SizePrefix:      sizePrefix,
		MonitorFS:       monitorFS,
		hoverIndex:      -1,
	}
}

// settingsRow defines a row in the settings panel.
type settingsRow struct {
	label string
	value string
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

func sizePrefixLabel(p fsmodel.SizePrefix) string {
	if p == fsmodel.Decimal {
		return "Decimal (kB)"
	}
	return "Binary (KiB)"
}

// DrawSettingsPanel renders the settings menu and returns any action taken.
func DrawSettingsPanel(state *SettingsState, screenW, screenH int32) SettingsAction {
	if state == nil || !state.Open {
		return SettingsNone
	}

	action := SettingsNone

	minSizeStr := "None"
	if state.MinSizeBytes > 0 {
		minSizeStr = FormatSize(int64(state.MinSizeBytes))
	}

	rows := []settingsRow{
		{"Show Legend", onOff(state.ShowLegend)},
		{"Theme", state.Theme},
		{"Only Directories", onOff(state.OnlyDirectories)},
		{"Minimum File Size", minSizeStr},
		{"Size Prefix", sizePrefixLabel(state.SizePrefix)},
		{"Monitor Filesystem", onOff(state.MonitorFS)},
	}

	// Panel dimensions
	panelW := int32(320)
	rowH := int32(32)
	headerH := int32(36)
	panelH := headerH + int32(len(rows))*rowH + 24 // +24 for padding + hint
	panelX := (screenW - panelW) / 2
	panelY := (screenH - panelH) / 2

	// Dimmed background
	rl.DrawRectangle(0, 0, screenW, screenH, rl.NewColor(0, 0, 0, 100))

	// Panel
	rl.DrawRectangle(panelX, panelY, panelW, panelH, color.SidebarBg)
	rl.DrawRectangleLines(panelX, panelY, panelW, panelH, color.Active.LinkAccent)

	// Title
	DrawTextUI("Settings", panelX+12, panelY+10, FontSize+2, color.TextPrimary)
	rl.DrawRectangle(panelX+12, panelY+headerH-2, panelW-24, 1, color.BorderColor)

	// Mouse interaction
	mousePos := rl.GetMousePosition()
	mouseClicked := rl.IsMouseButtonPressed(rl.MouseButtonLeft)
	state.hoverIndex = -1

	applyAction := func(i int, leftHalf bool) SettingsAction {
		switch i {
		case 0:
			state.ShowLegend = !state.ShowLegend
			return SettingsToggleLegend
		case 1:
			switch state.Theme {
			case "auto":
				state.Theme = "dark"
			case "dark":
				state.Theme = "light"
			default:
				state.Theme = "auto"
			}
			return SettingsCycleTheme
		case 2:
			state.OnlyDirectories = !state.OnlyDirectories
			return SettingsToggleOnlyDirs
		case 3:
			idx := indexOfStep(state.MinSizeBytes)
			if leftHalf {
				if idx > 0 {
					state.MinSizeBytes = minSizeSteps[idx-1]
				}
				return SettingsMinSizeDown
			}
			if idx < len(minSizeSteps)-1 {
				state.MinSizeBytes = minSizeSteps[idx+1]
			}
			return SettingsMinSizeUp
		case 4:
			if state.SizePrefix == fsmodel.Binary {
				state.SizePrefix = fsmodel.Decimal
			} else {
				state.SizePrefix = fsmodel.Binary
			}
			return SettingsCycleSizePrefix
		case 5:
			state.MonitorFS = !state.MonitorFS
			return SettingsToggleMonitor
		}
		return SettingsNone
	}

	// Draw rows
	for i, row := range rows {
		ry := panelY + headerH + int32(i)*rowH
		rx := panelX

		// Hover detection
		inRow := int32(mousePos.X) >= rx && int32(mousePos.X) < rx+panelW &&
			int32(mousePos.Y) >= ry && int32(mousePos.Y) < ry+rowH
		if inRow {
			state.hoverIndex = i
			rl.DrawRectangle(rx+4, ry, panelW-8, rowH, color.HoverBg)
		}

		// Label
		DrawTextUI(row.label, rx+16, ry+8, FontSize, color.TextPrimary)

		// Value (right-aligned, with accent color)
		valColor := color.Active.LinkAccent
		valW := MeasureTextUI(row.value, FontSize)
		DrawTextUI(row.value, rx+panelW-valW-16, ry+8, FontSize, valColor)

		// Separator
		if i < len(rows)-1 {
			rl.DrawRectangle(rx+12, ry+rowH-1, panelW-24, 1, color.BorderColor)
		}

		// Handle clicks
		if inRow && mouseClicked {
			leftHalf := int32(mousePos.X) < rx+panelW/2
			action = applyAction(i, leftHalf)
		}
	}

	// Keyboard shortcuts, numbered to match row order.
	keys := []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix}
	for i, key := range keys {
		if rl.IsKeyPressed(key) {
			action = applyAction(i, true)
		}
	}

	hintY := panelY + headerH + int32(len(rows))*rowH + 4
	DrawTextUI("Size: click left(-) / right(+) or press 4", panelX+12, hintY, SmallFontSize, color.TextDim)

	// Close hint
	closeHintY := panelY + panelH - 16
	hint := "Press Comma or Escape to close"
	hintW := MeasureTextUI(hint, SmallFontSize)
	DrawTextUI(hint, panelX+(panelW-hintW)/2, closeHintY, SmallFontSize, color.TextDim)

	return action
}

func indexOfStep(v uint64) int {
	for i, s := range minSizeSteps {
		if s == v {
			return i
		}
	}
	return 0
}
