package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hatchlang/hatch/scene"
	"github.com/hatchlang/hatch/vm"
	"github.com/urfave/cli/v3"
)

// playCommand runs a scene script headless: it compiles and runs the given
// file's top level once (so its class/global declarations register), then
// ticks a fresh scene.Scene for a fixed number of FixedUpdate steps, wiring
// `with("ClassName")` to the scene's entity lists via scene.WithResolver the
// same way a full embedder would. Nothing in this repo opens a window or an
// audio device (the spec's explicit Non-goal), so `play` is the bounded,
// testable slice of "running a scene" this CLI can offer: a headless tick
// loop a host's own render/input frontend would normally drive.
func playCommand() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "run a scene script headless for a fixed number of ticks",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "ticks", Value: 60, Usage: "number of FixedUpdate ticks to run"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			filename := cmd.Args().First()
			if filename == "" {
				return fmt.Errorf("play: a scene script file is required")
			}
			code, err := loadCode(filename)
			if err != nil {
				return err
			}

			sc := scene.NewScene()
			m := newManager()
			thread := m.NewThread(
				vm.WithOutput(os.Stdout),
				vm.WithObjectListResolver(sc.WithResolver()),
			)
			if err := thread.Run(code); err != nil {
				return err
			}

			ticks := int(cmd.Int("ticks"))
			ran := 0
			for i := 0; i < ticks; i++ {
				sc.Update(scene.FixedStep)
				sc.FixedUpdate(scene.FixedStep)
				ran++
				if next, restart := sc.AfterScene(); next != "" || restart {
					fmt.Printf("scene requested transition: next=%q restart=%v at tick %d\n", next, restart, ran)
					break
				}
			}
			fmt.Printf("ran %d/%d ticks\n", ran, ticks)
			return nil
		},
	}
}
