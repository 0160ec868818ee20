package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tsevere/dviz/internal/color"
	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/input"
	"github.com/tsevere/dviz/internal/layout"
	"github.com/tsevere/dviz/internal/monitor"
	"github.com/tsevere/dviz/internal/pipeline"
	"github.com/tsevere/dviz/internal/renderer"
	"github.com/tsevere/dviz/internal/scan"
	"github.com/tsevere/dviz/internal/scene"
	"github.com/tsevere/dviz/internal/search"
	"github.com/tsevere/dviz/internal/store"
	"github.com/tsevere/dviz/internal/treepath"
	"github.com/tsevere/dviz/internal/ui"
)

// paintBudgetPerFrame bounds how many pending-visual events are folded
// into scene colors per frame, so a burst of filesystem activity never
// stalls a draw call.
const paintBudgetPerFrame = 64

// Config holds application configuration from CLI flags.
type Config struct {
	RootPath          string
	Width             int
	Height            int
	Theme             string
	OnlyDirectories   bool
	MinSizeBytes      uint64
	SizePrefix        fsmodel.SizePrefix
	MonitorFilesystem bool
}

// scanOutcome carries the result of an async scan back to the main loop.
type scanOutcome struct {
	tree *store.Tree
	err  error
}

// App is the main application that wires all subsystems together.
type App struct {
	config Config
	logger *slog.Logger

	// Subsystems
	scanner    *scan.Scanner
	renderer   *renderer.Renderer
	inputState *input.InputState

	// State
	tree          *store.Tree
	graph         *scene.Graph
	treeViewState *ui.TreeViewState
	scanning      bool
	scanResultCh  chan scanOutcome
	selectedPath  string
	expandedPaths map[string]bool // tracks which dirs are expanded in 3D view
	filter        fsmodel.VisibilityFilter
	metadata      fsmodel.Metadata

	// Live filesystem watch
	monitor  *monitor.Monitor
	pipeline *pipeline.Pipeline

	// Input bar (path entry / search)
	inputBar      ui.InputBar
	searchResults []string // paths matching current search
	searchIndex   int      // current search result index

	// Inspect panel
	inspectOpen bool
	inspectInfo *ui.NodeInfo

	// Settings menu
	settings *ui.SettingsState

	// File preview
	preview ui.PreviewState
}

// New creates the application with the given config.
func New(cfg Config) *App {
	logger := slog.Default()
	filter := fsmodel.VisibilityFilter{MinSizeBytes: cfg.MinSizeBytes, OnlyShowDirectories: cfg.OnlyDirectories}
	return &App{
		config:        cfg,
		logger:        logger,
		scanner:       scan.NewScanner(scan.Options{Logger: logger}),
		renderer:      renderer.New(),
		inputState:    input.NewInputState(),
		expandedPaths: make(map[string]bool),
		filter:        filter,
		settings: ui.NewSettingsState(cfg.Theme, cfg.OnlyDirectories, cfg.MinSizeBytes,
			cfg.SizePrefix, cfg.MonitorFilesystem, true),
	}
}

// Run is the main entry point - initializes window and runs the main loop.
func (a *App) Run() {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(a.config.Width), int32(a.config.Height),
		fmt.Sprintf("D-Viz - %s", a.config.RootPath))
	defer rl.CloseWindow()
	color.InitTheme(a.config.Theme)
	ui.LoadFont()
	defer ui.UnloadFont()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0) // Disable Escape-to-quit so Escape works for in-app actions

	defer a.stopMonitor()

	a.startScan()

	for !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}
}

// startScan kicks off an async filesystem scan.
func (a *App) startScan() {
	a.stopMonitor()
	a.scanning = true
	a.tree = nil
	a.graph = nil
	a.scanResultCh = make(chan scanOutcome, 1)

	root := a.config.RootPath
	go func() {
		tree, err := a.scanner.Scan(context.Background(), root)
		a.scanResultCh <- scanOutcome{tree: tree, err: err}
	}()
}

// update handles input and checks for scan completion.
func (a *App) update() {
	// Check if scan completed
	if a.scanning && a.scanResultCh != nil {
		select {
		case result := <-a.scanResultCh:
			a.scanning = false
			if result.tree != nil {
				a.tree = result.tree
				a.metadata = scan.ComputeMetadata(a.tree)
				a.treeViewState = ui.NewTreeViewState(a.config.RootPath)
				a.expandedPaths[a.config.RootPath] = true
				a.rebuildLayout(true)
				if a.config.MonitorFilesystem {
					a.startMonitor()
				}
			} else if result.err != nil {
				a.logger.Error("scan failed", "path", a.config.RootPath, "error", result.err)
			}
		default:
			// Still scanning
		}
	}

	a.drainPaintHints()

	// Sync text input state to disable camera/shortcut keys
	sidebarSearchActive := a.treeViewState != nil && a.treeViewState.SearchActive
	textActive := a.inputBar.Active || sidebarSearchActive
	modalOpen := a.inspectOpen || a.settings.Open || a.preview.Open
	a.inputState.TextInputActive = textActive || modalOpen
	a.inputState.Camera.KeyboardEnabled = !textActive && !modalOpen

	// Check sidebar search submit
	if a.treeViewState != nil && a.treeViewState.SearchSubmit != "" {
		a.searchFor(a.treeViewState.SearchSubmit)
		a.treeViewState.SearchSubmit = ""
	}

	// Handle input bar
	if a.inputBar.Active {
		if a.inputBar.Update() {
			a.handleInputBarSubmit()
		}
		return // input bar consumes all keyboard input
	}

	// Handle inspect panel (consumes input when open)
	if a.inspectOpen {
		if rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyEscape) {
			a.inspectOpen = false
			a.inspectInfo = nil
		}
		return
	}

	// Handle preview panel (consumes input when open)
	if a.preview.Open {
		if a.preview.Update() {
			a.preview.Close()
		}
		// O key opens file with default app even from preview
		if rl.IsKeyPressed(rl.KeyO) {
			a.openWithDefault(a.preview.FilePath)
		}
		return
	}

	// Handle settings menu (consumes input when open)
	if a.settings.Open {
		if rl.IsKeyPressed(rl.KeyComma) || rl.IsKeyPressed(rl.KeyEscape) {
			a.settings.Open = false
		}
		return
	}

	// Process 3D input
	if a.graph != nil {
		clickedPath := a.inputState.Update(a.graph, ui.SidebarWidth)
		if clickedPath != "" {
			a.handleClickedPath(clickedPath)
		}

		// R = apply pending filesystem events and relayout
		if a.inputState.ReparseRequested {
			a.reparse()
		}

		// Path bar (Ctrl+L)
		if a.inputState.PathBarRequested {
			initial := a.config.RootPath
			if a.selectedPath != "" {
				initial = a.selectedPath
			}
			a.inputBar.Open(ui.InputBarPath, initial)
			return
		}

		// Search (F key -> sidebar search)
		if a.inputState.SearchRequested {
			if a.treeViewState != nil {
				a.treeViewState.SearchActive = true
				a.treeViewState.SearchText = ""
				a.treeViewState.SearchCursor = 0
			}
			return
		}

		// Enter = expand selected directory
		if a.inputState.ExpandRequested {
			if sel := a.inputState.Picker.SelectedNode; sel != nil && sel.IsDir() {
				if !a.expandedPaths[sel.Path] {
					a.expandDir(sel.Path, sel)
				}
			}
		}

		// Escape = collapse selected dir / go to parent
		if a.inputState.BackRequested {
			// First clear search results if active
			if len(a.searchResults) > 0 {
				a.searchResults = nil
				a.searchIndex = 0
			} else if sel := a.inputState.Picker.SelectedNode; sel != nil {
				if sel.IsDir() && a.expandedPaths[sel.Path] {
					// Collapse current dir
					delete(a.expandedPaths, sel.Path)
					if a.treeViewState != nil {
						delete(a.treeViewState.ExpandedDirs, sel.Path)
					}
					a.selectedPath = sel.Path
					a.rebuildGraph(false)
				} else if sel.Parent != nil {
					// Go to parent
					a.inputState.Picker.SelectedNode = sel.Parent
					a.selectedPath = sel.Parent.Path
					a.inputState.FocusOnNode(sel.Parent)
				}
			}
		}

		// Home = focus on root
		if a.inputState.HomeRequested && a.graph.Root != nil {
			a.inputState.Picker.SelectedNode = a.graph.Root
			a.selectedPath = a.graph.Root.Path
			a.inputState.FocusOnNode(a.graph.Root)
		}

		// B = birdseye view
		if a.inputState.BirdseyeRequested {
			a.birdseyeView()
		}

		// Tab / Shift+Tab = cycle through visible nodes
		if a.inputState.NextNodeRequested {
			a.selectNextVisible(1)
		}
		if a.inputState.PrevNodeRequested {
			a.selectNextVisible(-1)
		}

		// Space = inspect/preview selected node
		if a.inputState.InspectRequested {
			if sel := a.inputState.Picker.SelectedNode; sel != nil {
				if sel.IsDir() {
					// Directories get the inspect panel
					info := ui.NewNodeInfo(sel.Node, sel.Path)
					a.inspectInfo = &info
					a.inspectOpen = true
				} else {
					// Files get the preview panel
					a.preview.OpenPreview(sel.Path)
				}
			}
		}

		// O = open selected file with default application
		if a.inputState.OpenFileRequested {
			if sel := a.inputState.Picker.SelectedNode; sel != nil {
				a.openWithDefault(sel.Path)
			}
		}

		// Comma = open settings
		if a.inputState.SettingsRequested {
			a.settings.Open = true
		}

		// Search result navigation: N=next, P=prev
		if len(a.searchResults) > 0 && !a.inputState.TextInputActive {
			if rl.IsKeyPressed(rl.KeyN) {
				a.navigateToSearchResult((a.searchIndex + 1) % len(a.searchResults))
			}
			if rl.IsKeyPressed(rl.KeyP) {
				idx := a.searchIndex - 1
				if idx < 0 {
					idx = len(a.searchResults) - 1
				}
				a.navigateToSearchResult(idx)
			}
		}
	}
}

// startMonitor starts the filesystem watch and its update pipeline.
func (a *App) startMonitor() {
	if a.monitor != nil && a.monitor.IsActive() {
		return
	}
	a.monitor = monitor.New(a.logger)
	a.pipeline = pipeline.New(a.logger)
	if err := a.monitor.Start(a.config.RootPath, a.pipeline.RawEvents.Push); err != nil {
		a.logger.Warn("monitor: failed to start watch", "path", a.config.RootPath, "error", err)
		a.monitor = nil
		a.pipeline = nil
		return
	}
	// The pipeline loop runs only while the monitor is active, so it is
	// started after the monitor; events pushed meanwhile wait in RawEvents.
	a.pipeline.Start(a.monitor.IsActive)
}

// stopMonitor tears down the filesystem watch and its pipeline, if active.
func (a *App) stopMonitor() {
	if a.monitor != nil {
		a.monitor.Stop()
		a.monitor = nil
	}
	if a.pipeline != nil {
		a.pipeline.Stop()
		a.pipeline = nil
	}
}

// reparse folds every pending filesystem event into the model tree and
// recomputes layout geometry. Per the no-incremental-relayout contract,
// this is the only point at which layout is recomputed after the
// initial scan.
func (a *App) reparse() {
	if a.tree == nil || a.pipeline == nil {
		return
	}
	pipeline.RefreshTreemap(a.tree, a.config.RootPath, a.logger, a.pipeline.PendingModel)
	a.metadata = scan.ComputeMetadata(a.tree)
	a.rebuildLayout(false)
}

// drainPaintHints applies the renderer-facing paint(node, color) side
// channel described by the component design: a Touched event repaints
// its node with TouchedPaint, a Deleted event with DeletedPaint.
// Created and Renamed events carry no paint hint.
func (a *App) drainPaintHints() {
	if a.pipeline == nil || a.graph == nil {
		return
	}
	for i := 0; i < paintBudgetPerFrame; i++ {
		ev, ok := a.pipeline.PendingVisual.TryPop()
		if !ok {
			return
		}
		node := a.graph.FindByPath(ev.Path)
		if node == nil {
			continue
		}
		switch ev.Kind {
		case fsmodel.Touched:
			node.Color = color.Active.TouchedPaint
		case fsmodel.Deleted:
			node.Color = color.Active.DeletedPaint
		}
	}
}

// selectNextVisible cycles selection through visible nodes.
func (a *App) selectNextVisible(direction int) {
	if a.graph == nil {
		return
	}

	// Build flat list of visible nodes
	var visible []*scene.SceneNode
	a.graph.Traverse(func(node *scene.SceneNode) bool {
		visible = append(visible, node)
		return true
	})
	if len(visible) == 0 {
		return
	}

	// Find current index
	current := -1
	for i, n := range visible {
		if n == a.inputState.Picker.SelectedNode {
			current = i
			break
		}
	}

	// Move
	next := current + direction
	if next < 0 {
		next = len(visible) - 1
	} else if next >= len(visible) {
		next = 0
	}

	node := visible[next]
	a.inputState.Picker.SelectedNode = node
	a.selectedPath = node.Path
	if a.treeViewState != nil {
		a.treeViewState.SelectedPath = node.Path
	}
	a.inputState.FocusOnNode(node)
}

// handleClickedPath processes a double-clicked path (expand/collapse dirs).
func (a *App) handleClickedPath(clickedPath string) {
	a.selectedPath = clickedPath
	if a.treeViewState != nil {
		a.treeViewState.SelectedPath = clickedPath
	}
	// Expand/collapse directories on double-click
	if node := a.graph.FindByPath(clickedPath); node != nil && node.IsDir() {
		if a.expandedPaths[clickedPath] {
			// Collapse
			delete(a.expandedPaths, clickedPath)
			if a.treeViewState != nil {
				delete(a.treeViewState.ExpandedDirs, clickedPath)
			}
			a.rebuildGraph(false)
		} else {
			// Expand
			a.expandDir(clickedPath, node)
		}
	}
}

// expandDir marks a directory expanded and rebuilds the scene graph.
// The whole tree is already resident in memory from the initial scan,
// so expanding never triggers I/O — it is purely a display toggle.
func (a *App) expandDir(path string, node *scene.SceneNode) {
	a.expandedPaths[path] = true
	if a.treeViewState != nil {
		a.treeViewState.ExpandedDirs[path] = true
	}
	a.selectedPath = path
	a.rebuildGraph(false)
	if newNode := a.graph.FindByPath(path); newNode != nil {
		a.inputState.FocusOnNode(newNode)
	}
}

// handleInputBarSubmit processes the input bar when the user presses Enter.
func (a *App) handleInputBarSubmit() {
	text := strings.TrimSpace(a.inputBar.Text)
	mode := a.inputBar.Mode
	a.inputBar.Close()

	if text == "" {
		return
	}

	switch mode {
	case ui.InputBarPath:
		a.navigateToPath(text)
	case ui.InputBarSearch:
		a.searchFor(text)
	}
}

// navigateToPath changes the root to a new filesystem path.
func (a *App) navigateToPath(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return
	}
	info, err := os.Stat(absPath)
	if err != nil || !info.IsDir() {
		return
	}

	// Check if path is within current tree - just navigate to it
	if a.graph != nil {
		if node := a.graph.FindByPath(absPath); node != nil {
			a.selectedPath = absPath
			a.inputState.Picker.SelectedNode = node
			a.inputState.FocusOnNode(node)
			// Expand parent chain
			a.expandParentChain(absPath)
			return
		}
	}

	// New root - restart scan
	a.config.RootPath = absPath
	a.expandedPaths = map[string]bool{absPath: true}
	a.selectedPath = ""
	rl.SetWindowTitle(fmt.Sprintf("D-Viz - %s", absPath))
	a.startScan()
}

// expandParentChain ensures all ancestors of the given path are expanded.
func (a *App) expandParentChain(path string) {
	for path != a.config.RootPath && path != "/" && path != "." {
		parent := filepath.Dir(path)
		if parent == path {
			break
		}
		if node := a.graph.FindByPath(parent); node != nil && node.IsDir() {
			if !a.expandedPaths[parent] {
				a.expandDir(parent, node)
			}
		}
		path = parent
	}
}

// searchFor runs internal/search against the current tree and
// navigates to the first match.
func (a *App) searchFor(query string) {
	if a.tree == nil || a.tree.Root() == nil {
		return
	}

	flags := search.Flags{SearchFiles: true, SearchDirs: true}
	matches, err := search.Search(a.tree.Root(), query, a.filter, flags)
	if err != nil {
		a.logger.Warn("search failed", "query", query, "error", err)
		return
	}

	a.searchResults = a.searchResults[:0]
	for _, n := range matches {
		a.searchResults = append(a.searchResults, treepath.Of(a.config.RootPath, n))
	}
	a.searchIndex = 0

	if len(a.searchResults) > 0 {
		a.navigateToSearchResult(0)
	}
}

// navigateToSearchResult navigates to the n-th search result.
func (a *App) navigateToSearchResult(index int) {
	if index < 0 || index >= len(a.searchResults) {
		return
	}
	a.searchIndex = index
	path := a.searchResults[index]

	// Expand parent chain to make the result visible
	a.expandParentChain(path)

	// After expanding parents, rebuild may have happened - find the node
	if node := a.graph.FindByPath(path); node != nil {
		a.selectedPath = path
		a.inputState.Picker.SelectedNode = node
		a.inputState.FocusOnNode(node)
		if a.treeViewState != nil {
			a.treeViewState.SelectedPath = path
		}
	}
}

// rebuildLayout recomputes block geometry and bounding boxes, then the
// scene graph. autoFrame controls whether the camera is repositioned
// to show everything. Call this after a scan or a reparse; nothing
// else should change block geometry.
func (a *App) rebuildLayout(autoFrame bool) {
	if a.tree == nil {
		return
	}
	opts := layout.DefaultOptions()
	layout.Parse(a.tree, opts)
	layout.ComputeBoundingBoxes(a.tree)
	layout.AssignVboOffsets(a.tree, a.filter)
	a.rebuildGraph(autoFrame)
}

// rebuildGraph rebuilds the scene graph from the current tree and
// layout without touching block geometry — used for expand/collapse
// and visibility-filter changes, neither of which moves a block.
func (a *App) rebuildGraph(autoFrame bool) {
	if a.tree == nil {
		return
	}
	a.graph = scene.NewGraph(a.tree, a.config.RootPath, a.filter, a.expandedPaths)

	// Restore selection pointer after rebuild
	if a.selectedPath != "" {
		a.inputState.Picker.SelectedNode = a.graph.FindByPath(a.selectedPath)
	}
	a.inputState.Picker.HoveredNode = nil

	if autoFrame {
		a.frameCamera()
	}
}

// frameCamera positions the camera to see the entire scene.
func (a *App) frameCamera() {
	if a.graph == nil || a.graph.Root == nil {
		return
	}
	minBounds, maxBounds := a.sceneBounds()
	a.inputState.Camera.FrameScene(minBounds, maxBounds)
}

// sceneBounds computes the bounding box over every visible scene node.
func (a *App) sceneBounds() (rl.Vector3, rl.Vector3) {
	minBounds := rl.NewVector3(float32(1e30), float32(1e30), float32(1e30))
	maxBounds := rl.NewVector3(float32(-1e30), float32(-1e30), float32(-1e30))

	a.graph.Traverse(func(node *scene.SceneNode) bool {
		if node.Bounds.Min.X < minBounds.X {
			minBounds.X = node.Bounds.Min.X
		}
		if node.Bounds.Min.Y < minBounds.Y {
			minBounds.Y = node.Bounds.Min.Y
		}
		if node.Bounds.Min.Z < minBounds.Z {
			minBounds.Z = node.Bounds.Min.Z
		}
		if node.Bounds.Max.X > maxBounds.X {
			maxBounds.X = node.Bounds.Max.X
		}
		if node.Bounds.Max.Y > maxBounds.Y {
			maxBounds.Y = node.Bounds.Max.Y
		}
		if node.Bounds.Max.Z > maxBounds.Z {
			maxBounds.Z = node.Bounds.Max.Z
		}
		return true
	})
	return minBounds, maxBounds
}

// draw renders one frame.
func (a *App) draw() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	rl.BeginDrawing()
	rl.ClearBackground(color.Background)

	// 3D viewport
	rl.BeginMode3D(a.inputState.Camera.Camera)
	renderer.DrawGround()
	if a.graph != nil {
		a.renderer.DrawScene(a.graph, a.inputState.Picker.SelectedNode, a.inputState.Picker.HoveredNode)
	}
	rl.EndMode3D()

	// 3D labels + file icons projected to 2D (drawn after EndMode3D so they're always facing camera)
	// Uses shared placement tracker to prevent overlapping text/icons
	if a.graph != nil {
		var placed []screenRect
		placed = a.drawSceneLabels(placed)
		a.drawFileIcons(placed)
	}

	// Floating tooltip for hovered 3D node
	if hNode := a.inputState.Picker.HoveredNode; hNode != nil {
		info := ui.NewNodeInfo(hNode.Node, hNode.Path)
		screenPos := rl.GetWorldToScreen(rl.NewVector3(
			hNode.Position.X, hNode.Position.Y+hNode.Size.Y/2, hNode.Position.Z,
		), a.inputState.Camera.Camera)
		ui.DrawSelectedTooltip(&info, screenPos.X, screenPos.Y)
	}

	// 2D UI overlay
	// Breadcrumb
	breadcrumbPath := a.config.RootPath
	if sel := a.inputState.Picker.SelectedNode; sel != nil {
		breadcrumbPath = sel.Path
	}
	clickedBreadcrumb := ui.DrawBreadcrumb(breadcrumbPath, a.config.RootPath, screenW)
	if clickedBreadcrumb != "" {
		a.inputState.FocusOnPath(a.graph, clickedBreadcrumb)
	}

	// Sidebar
	if a.tree != nil && a.treeViewState != nil {
		sidebarClicked := ui.DrawSidebar(a.tree, a.config.RootPath, a.treeViewState, screenH)
		if sidebarClicked != "" {
			a.selectedPath = sidebarClicked
			a.inputState.FocusOnPath(a.graph, sidebarClicked)
		}
	}

	// Info panel
	var selectedInfo *ui.NodeInfo
	if sel := a.inputState.Picker.SelectedNode; sel != nil {
		info := ui.NewNodeInfo(sel.Node, sel.Path)
		selectedInfo = &info
	}
	ui.DrawInfoPanel(selectedInfo, screenH)

	// Input bar overlay
	a.inputBar.Draw(screenW)

	// Search results indicator
	if len(a.searchResults) > 0 {
		searchText := fmt.Sprintf("Search: %d/%d matches (N=next, P=prev, Esc=clear)",
			a.searchIndex+1, len(a.searchResults))
		stw := ui.MeasureTextUI(searchText, ui.SmallFontSize)
		sx := screenW - stw - 12
		sy := ui.BreadcrumbHeight + 30
		rl.DrawRectangle(sx-4, sy-1, stw+8, 15, rl.NewColor(0, 0, 0, 180))
		ui.DrawTextUI(searchText, sx, sy, ui.SmallFontSize, color.Active.LinkAccent)
	}

	// Inspect panel overlay
	if a.inspectOpen && a.inspectInfo != nil {
		ui.DrawInspectPanel(a.inspectInfo, screenW, screenH)
	}

	// Preview panel overlay
	if a.preview.Open {
		ui.DrawPreviewPanel(&a.preview, screenW, screenH)
	}

	// Settings panel overlay
	if a.settings.Open {
		action := ui.DrawSettingsPanel(a.settings, screenW, screenH)
		a.applySettingsAction(action)
	}

	// Scanning overlay
	if a.scanning {
		ui.DrawScanProgress(a.scanner.Progress(), screenW, screenH)
	}

	// Scan summary + monitor indicator
	if a.tree != nil && !a.scanning {
		summary := fmt.Sprintf("%d dirs, %d files, %s", a.metadata.DirectoryCount,
			a.metadata.FileCount, formatBySizePrefix(a.metadata.TotalBytes, a.config.SizePrefix))
		if a.monitor != nil && a.monitor.IsActive() {
			summary += " · watching"
		}
		ui.DrawModeIndicator(summary, screenW)
	}

	// Help text (keep settings and H key toggle in sync)
	a.settings.ShowLegend = a.inputState.ShowHelp
	if a.inputState.ShowHelp {
		ui.DrawHelpText(screenW, screenH)
	}

	rl.EndDrawing()
}

// screenRect tracks a placed 2D element to prevent overlaps.
type screenRect struct {
	x, y, w, h int32
}

// rectsOverlap returns true if two rectangles overlap (with padding).
func rectsOverlap(a, b screenRect) bool {
	pad := int32(2)
	return a.x-pad < b.x+b.w+pad && a.x+a.w+pad > b.x-pad &&
		a.y-pad < b.y+b.h+pad && a.y+a.h+pad > b.y-pad
}

// anyOverlap returns true if r overlaps any rect in the list.
func anyOverlap(r screenRect, placed []screenRect) bool {
	for _, p := range placed {
		if rectsOverlap(r, p) {
			return true
		}
	}
	return false
}

// drawSceneLabels renders nearby directory names as 2D text projected from 3D positions.
// Returns updated placement list for downstream consumers.
func (a *App) drawSceneLabels(placed []screenRect) []screenRect {
	cam := a.inputState.Camera.Camera
	sw := float32(rl.GetScreenWidth())
	sh := float32(rl.GetScreenHeight())
	labelsDrawn := 0
	maxLabels := 40

	a.graph.Traverse(func(node *scene.SceneNode) bool {
		if labelsDrawn >= maxLabels {
			return false
		}
		if !node.IsDir() {
			return true
		}

		// Distance check first (cheap)
		dx := cam.Position.X - node.Position.X
		dy := cam.Position.Y - node.Position.Y
		dz := cam.Position.Z - node.Position.Z
		dist := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
		if dist > 50 {
			return true
		}

		// Position label above the pedestal
		labelPos := rl.NewVector3(
			node.Position.X,
			node.Position.Y+node.Size.Y/2+0.15,
			node.Position.Z,
		)
		screenPos := rl.GetWorldToScreen(labelPos, cam)

		if screenPos.X < 0 || screenPos.X > sw || screenPos.Y < 0 || screenPos.Y > sh {
			return true
		}

		alpha := uint8(255)
		if dist > 25 {
			alpha = uint8(255.0 * (1.0 - (dist-25.0)/25.0))
		}

		name := node.Record().Name
		if len(name) > 18 {
			name = name[:16] + ".."
		}

		fontSize := float32(12)
		textWidth := ui.MeasureTextUI(name, fontSize)
		x := int32(screenPos.X) - textWidth/2
		y := int32(screenPos.Y)

		// Check for overlap with already-placed elements
		rect := screenRect{x - 2, y - 1, textWidth + 4, 14}
		if anyOverlap(rect, placed) {
			return true // skip this label
		}

		rl.DrawRectangle(rect.x, rect.y, rect.w, rect.h, rl.NewColor(0, 0, 0, alpha/2))
		ui.DrawTextUI(name, x, y, fontSize, rl.NewColor(
			color.Active.TextPrimary.R,
			color.Active.TextPrimary.G,
			color.Active.TextPrimary.B,
			alpha,
		))
		placed = append(placed, rect)
		labelsDrawn++

		return true
	})

	return placed
}

// applySettingsAction handles a setting change from the settings panel.
func (a *App) applySettingsAction(action ui.SettingsAction) {
	switch action {
	case ui.SettingsToggleLegend:
		a.inputState.ShowHelp = a.settings.ShowLegend

	case ui.SettingsCycleTheme:
		a.config.Theme = a.settings.Theme
		color.InitTheme(a.config.Theme)

	case ui.SettingsToggleOnlyDirs:
		a.config.OnlyDirectories = a.settings.OnlyDirectories
		a.filter.OnlyShowDirectories = a.config.OnlyDirectories
		a.applyFilterChange()

	case ui.SettingsMinSizeUp, ui.SettingsMinSizeDown:
		a.config.MinSizeBytes = a.settings.MinSizeBytes
		a.filter.MinSizeBytes = a.config.MinSizeBytes
		a.applyFilterChange()

	case ui.SettingsCycleSizePrefix:
		a.config.SizePrefix = a.settings.SizePrefix

	case ui.SettingsToggleMonitor:
		a.config.MonitorFilesystem = a.settings.MonitorFS
		if a.config.MonitorFilesystem {
			a.startMonitor()
		} else {
			a.stopMonitor()
		}
	}
}

// applyFilterChange re-derives visibility and VBO offsets for the new
// filter and rebuilds the scene graph. Block geometry is untouched —
// the visibility filter has no effect on where a block is placed.
func (a *App) applyFilterChange() {
	if a.tree == nil {
		return
	}
	layout.AssignVboOffsets(a.tree, a.filter)
	a.rebuildGraph(false)
}

// drawFileIcons renders simple unicolor 2D icons on top of file pedestals.
func (a *App) drawFileIcons(placed []screenRect) {
	cam := a.inputState.Camera.Camera
	sw := float32(rl.GetScreenWidth())
	sh := float32(rl.GetScreenHeight())
	iconsDrawn := 0
	maxIcons := 80

	a.graph.Traverse(func(node *scene.SceneNode) bool {
		if iconsDrawn >= maxIcons {
			return false
		}
		if node.IsDir() {
			return true
		}

		// Distance check
		dx := cam.Position.X - node.Position.X
		dy := cam.Position.Y - node.Position.Y
		dz := cam.Position.Z - node.Position.Z
		dist := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
		if dist > 30 {
			return true
		}

		// Project top-center of pedestal to screen
		labelPos := rl.NewVector3(
			node.Position.X,
			node.Position.Y+node.Size.Y/2+0.02,
			node.Position.Z,
		)
		sp := rl.GetWorldToScreen(labelPos, cam)
		if sp.X < 0 || sp.X > sw || sp.Y < 0 || sp.Y > sh {
			return true
		}

		// Scale icon size by distance
		scale := 1.0 - (dist / 30.0)
		if scale < 0.3 {
			scale = 0.3
		}
		iconSize := int32(float32(10) * scale)
		if iconSize < 4 {
			return true
		}

		cx := int32(sp.X)
		cy := int32(sp.Y)

		// Check for overlap with placed labels/icons
		rect := screenRect{cx - iconSize, cy - iconSize, iconSize * 2, iconSize * 2}
		if anyOverlap(rect, placed) {
			return true
		}

		alpha := uint8(255)
		if dist > 15 {
			alpha = uint8(255.0 * (1.0 - (dist-15.0)/15.0))
		}

		icon, _ := ui.FileTypeIcon(node.Record().Name, false)
		iconColor := ui.FileTypeIconColor(icon)
		iconColor.A = alpha

		drawSimpleIcon(icon, cx, cy, iconSize, iconColor)
		placed = append(placed, rect)
		iconsDrawn++
		return true
	})
}

// drawSimpleIcon draws a small unicolor geometric shape representing a file type.
func drawSimpleIcon(icon string, cx, cy, size int32, clr rl.Color) {
	s := size
	switch icon {
	case "Go", "Py", "JS", "TS", "TSX", "JSX", "Rs", "C", "C++", "Jv", "Rb",
		"Sw", "Kt", "Lua", "C#", "PHP", "Zig", "Drt", "Ex", "Hs", "ML", "R", "OC",
		"H", "H++", "Scl", "Exs", "Erl":
		// Code: angle brackets < >
		rl.DrawLine(cx-s, cy, cx-s/2, cy-s/2, clr)
		rl.DrawLine(cx-s, cy, cx-s/2, cy+s/2, clr)
		rl.DrawLine(cx+s, cy, cx+s/2, cy-s/2, clr)
		rl.DrawLine(cx+s, cy, cx+s/2, cy+s/2, clr)

	case "PNG", "JPG", "GIF", "BMP", "SVG", "WBP", "ICO", "TIF":
		// Image: small rectangle with triangle inside
		rl.DrawRectangleLines(cx-s, cy-s*3/4, s*2, s*3/2, clr)
		rl.DrawTriangle(
			rl.NewVector2(float32(cx-s/2), float32(cy+s/2)),
			rl.NewVector2(float32(cx), float32(cy-s/4)),
			rl.NewVector2(float32(cx+s/2), float32(cy+s/2)),
			clr,
		)

	case "MP3", "WAV", "FLC", "OGG", "AAC", "M4A":
		// Audio: note shape (circle + stem)
		rl.DrawCircle(cx-s/4, cy+s/4, float32(s)/3, clr)
		rl.DrawLine(cx-s/4+s/3, cy+s/4, cx-s/4+s/3, cy-s*3/4, clr)

	case "MP4", "MKV", "AVI", "MOV", "WBM", "WMV":
		// Video: play triangle
		rl.DrawTriangle(
			rl.NewVector2(float32(cx-s/2), float32(cy-s*3/4)),
			rl.NewVector2(float32(cx-s/2), float32(cy+s*3/4)),
			rl.NewVector2(float32(cx+s*3/4), float32(cy)),
			clr,
		)

	case "ZIP", "TAR", "GZ", "RAR", "7Z", "BZ2", "XZ", "ZST":
		// Archive: box with zipper line
		rl.DrawRectangleLines(cx-s, cy-s*3/4, s*2, s*3/2, clr)
		rl.DrawLine(cx, cy-s*3/4, cx, cy+s*3/4, clr)

	case "PDF", "DOC", "XLS", "PPT":
		// Document: page with folded corner
		rl.DrawRectangleLines(cx-s*3/4, cy-s, s*3/2, s*2, clr)
		rl.DrawLine(cx+s*3/4-s/2, cy-s, cx+s*3/4, cy-s+s/2, clr)

	case "MD", "TXT", "RST":
		// Text: horizontal lines
		rl.DrawLine(cx-s, cy-s/2, cx+s, cy-s/2, clr)
		rl.DrawLine(cx-s, cy, cx+s/2, cy, clr)
		rl.DrawLine(cx-s, cy+s/2, cx+s*3/4, cy+s/2, clr)

	case "Sh", "Bat", "PS":
		// Shell: prompt >_
		rl.DrawLine(cx-s, cy-s/3, cx, cy, clr)
		rl.DrawLine(cx-s, cy+s/3, cx, cy, clr)
		rl.DrawLine(cx, cy+s/2, cx+s, cy+s/2, clr)

	case "JSN", "YML", "TML", "XML", "INI", "CFG", "ENV":
		// Config: gear-like (small diamond)
		rl.DrawLine(cx, cy-s, cx+s, cy, clr)
		rl.DrawLine(cx+s, cy, cx, cy+s, clr)
		rl.DrawLine(cx, cy+s, cx-s, cy, clr)
		rl.DrawLine(cx-s, cy, cx, cy-s, clr)

	case "DB", "SQL":
		// Database: stacked ellipses (simplified as lines)
		rl.DrawEllipseLines(cx, cy-s/2, float32(s), float32(s)/3, clr)
		rl.DrawLine(cx-s, cy-s/2, cx-s, cy+s/2, clr)
		rl.DrawLine(cx+s, cy-s/2, cx+s, cy+s/2, clr)
		rl.DrawEllipseLines(cx, cy+s/2, float32(s), float32(s)/3, clr)

	default:
		// Generic file: simple rectangle
		rl.DrawRectangleLines(cx-s*3/4, cy-s, s*3/2, s*2, clr)
	}
}

// birdseyeView positions the camera overhead to show all expanded directories.
func (a *App) birdseyeView() {
	if a.graph == nil || a.graph.Root == nil {
		return
	}
	minBounds, maxBounds := a.sceneBounds()
	a.inputState.Camera.Birdseye(minBounds, maxBounds)
}

// formatBySizePrefix renders a byte count using either binary (KiB/MiB/
// GiB) or decimal (kB/MB/GB) units, per spec.md §6's size_prefix option.
func formatBySizePrefix(bytes uint64, prefix fsmodel.SizePrefix) string {
	if prefix == fsmodel.Decimal {
		const kB, mB, gB = 1000, 1000 * 1000, 1000 * 1000 * 1000
		switch {
		case bytes >= gB:
			return fmt.Sprintf("%.1f GB", float64(bytes)/gB)
		case bytes >= mB:
			return fmt.Sprintf("%.1f MB", float64(bytes)/mB)
		case bytes >= kB:
			return fmt.Sprintf("%.1f kB", float64(bytes)/kB)
		default:
			return fmt.Sprintf("%d B", bytes)
		}
	}
	return ui.FormatSize(int64(bytes))
}

// openWithDefault opens a file or directory with the OS default application.
func (a *App) openWithDefault(path string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		return
	}
	cmd.Start()
}
