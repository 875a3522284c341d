package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/oksasatya/cohortly/config"
)

func main() {
	_ = godotenv.Load() // load .env if present

	app := newApp(config.Load())
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// commands builds the command tree; rt is set in Before, once flags are parsed.
type commands struct {
	rt *runtime
}

func newApp(cfg *config.Config) *cli.App {
	cmds := &commands{}
	return &cli.App{
		Name:  "cohortly",
		Usage: "browse and manage cohorts, communities and posts",
		Before: func(c *cli.Context) error {
			rt, err := newRuntime(c.Context, cfg, c.App.Writer)
			if err != nil {
				return err
			}
			cmds.rt = rt
			return nil
		},
		After: func(*cli.Context) error {
			if cmds.rt != nil {
				cmds.rt.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmds.token(),
			cmds.cohorts(),
			cmds.communities(),
			cmds.programmes(),
			cmds.modules(),
			cmds.posts(),
			cmds.profile(),
			cmds.watch(),
		},
	}
}
