// objview is an interactive viewer for Wavefront OBJ meshes.
package main

import (
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/internal/viewer"
)

func main() {
	config.ParseFlags()

	args := config.Args()
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "Usage: objview [flags] [file.obj]")
		os.Exit(2)
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		// No file on the command line, ask for one.
		picked, err := openFileDialog()
		if err != nil {
			if err != dialog.ErrCancelled {
				fmt.Fprintf(os.Stderr, "File dialog error: %v\n", err)
				os.Exit(1)
			}
			os.Exit(0)
		}
		path = picked
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("config: %+v", cfg)

	v, err := viewer.New(cfg, path)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	err = v.Run()
	v.Close()
	if err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed")
}

// openFileDialog shows a native file dialog to select an OBJ file.
func openFileDialog() (string, error) {
	return dialog.File().
		Filter("Wavefront OBJ", "obj").
		Filter("All Files", "*").
		Title("Open OBJ Model").
		Load()
}
