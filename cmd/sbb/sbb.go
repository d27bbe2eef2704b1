package main

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	sbbcli "github.com/travigo/sbb/pkg/cli"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

const defaultCommand = "connections"

func main() {
	if os.Getenv("SBB_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = log.Output(os.Stderr)
	}

	if os.Getenv("SBB_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := newApp()

	err := app.Run(normalizeArgs(os.Args, app))
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                 "sbb",
		Usage:                "Query SBB train connections",
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Print debug information to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				log.Logger = log.Logger.Level(zerolog.DebugLevel)
			}

			return nil
		},
		Commands: sbbcli.RegisterCLI(),
	}
}

// normalizeArgs lets `sbb Bern Zürich` stand for `sbb connections Bern Zürich`.
// Flags given after the places are moved in front of them, the flag parser
// stops at the first positional argument.
func normalizeArgs(args []string, app *cli.App) []string {
	if len(args) < 2 {
		return args
	}

	var global []string
	i := 1
	for ; i < len(args) && isFlag(args[i]); i++ {
		flag := findFlag(app.Flags, args[i])
		if flag == nil {
			break
		}

		global = append(global, args[i])
		if needsValue(flag, args[i]) && i+1 < len(args) {
			i++
			global = append(global, args[i])
		}
	}

	if i == len(args) || args[i] == "help" || args[i] == "h" {
		return args
	}

	rest := args[i+1:]
	command := app.Command(args[i])
	if command == nil {
		command = app.Command(defaultCommand)
		rest = args[i:]
	}

	var flags, positionals []string
	for j := 0; j < len(rest); j++ {
		arg := rest[j]
		if arg == "--" {
			positionals = append(positionals, rest[j:]...)
			break
		}
		if !isFlag(arg) {
			positionals = append(positionals, arg)
			continue
		}

		target := &flags
		flag := findFlag(command.Flags, arg)
		if flag == nil {
			if flag = findFlag(app.Flags, arg); flag != nil {
				target = &global
			}
		}

		*target = append(*target, arg)
		if flag != nil && needsValue(flag, arg) && j+1 < len(rest) {
			j++
			*target = append(*target, rest[j])
		}
	}

	normalized := append([]string{args[0]}, global...)
	normalized = append(normalized, command.Name)
	normalized = append(normalized, flags...)

	return append(normalized, positionals...)
}

func isFlag(arg string) bool {
	return len(arg) > 1 && strings.HasPrefix(arg, "-")
}

func flagName(arg string) string {
	name := strings.TrimLeft(arg, "-")
	if index := strings.Index(name, "="); index >= 0 {
		name = name[:index]
	}

	return name
}

func findFlag(flags []cli.Flag, arg string) cli.Flag {
	name := flagName(arg)
	for _, flag := range flags {
		for _, candidate := range flag.Names() {
			if candidate == name {
				return flag
			}
		}
	}

	return nil
}

// needsValue reports whether the next argument belongs to the flag.
func needsValue(flag cli.Flag, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}

	if valueFlag, ok := flag.(interface{ TakesValue() bool }); ok {
		return valueFlag.TakesValue()
	}

	return true
}
