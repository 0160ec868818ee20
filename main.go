package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tsevere/dviz/internal/app"
	"github.com/tsevere/dviz/internal/fsmodel"
)

var version = "dev"

func main() {
	rootPath := flag.String("path", "/", "Root directory to visualize")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 800, "Window height")
	theme := flag.String("theme", "", "Color theme: dark, light, or auto (default: auto-detect)")
	onlyDirs := flag.Bool("only-directories", false, "Hide files; show only the directory structure")
	minSize := flag.Int64("min-size", 0, "Hide entries smaller than this many bytes")
	sizePrefix := flag.String("size-prefix", "binary", "Size unit prefix: binary (KiB/MiB/GiB) or decimal (kB/MB/GB)")
	watch := flag.Bool("watch", false, "Monitor the filesystem for changes after the initial scan")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("D-Viz", version)
		return
	}

	// Resolve path
	absPath, err := filepath.Abs(*rootPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving path: %v\n", err)
		os.Exit(1)
	}

	info, err := os.Stat(absPath)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Invalid directory: %s\n", absPath)
		os.Exit(1)
	}

	prefix := fsmodel.Binary
	if *sizePrefix == "decimal" {
		prefix = fsmodel.Decimal
	}

	if *minSize < 0 {
		fmt.Fprintln(os.Stderr, "min-size must not be negative")
		os.Exit(1)
	}

	application := app.New(app.Config{
		RootPath:          absPath,
		Width:             *width,
		Height:            *height,
		Theme:             *theme,
		OnlyDirectories:   *onlyDirs,
		MinSizeBytes:      uint64(*minSize),
		SizePrefix:        prefix,
		MonitorFilesystem: *watch,
	})
	application.Run()
}
