package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"portfolio-globe/internal/config"
	"portfolio-globe/internal/env"
	"portfolio-globe/internal/graphics"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "globe:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := config.Flags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := env.Load(".env"); err != nil {
		return err
	}
	configDir := config.ConfigDir(fs)
	prefs, err := config.Load(configDir, fs)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, prefs, configDir)
	if err != nil {
		return err
	}
	defer a.close()

	graphics.Run(prefs.Window, graphics.Loop{
		Init:   a.init,
		Resize: a.resize,
		Update: a.update,
		Draw:   a.draw,
		Close:  a.release,
	})
	return nil
}
