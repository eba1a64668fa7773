package main

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"

	"github.com/rlch/jgen/env"
	"github.com/rlch/jgen/language"
	javalang "github.com/rlch/jgen/language/java"
	"github.com/rlch/jgen/model"
	"github.com/rlch/jgen/output"
)

var errMissingDescriptor = errors.New("missing descriptor argument")

func importsCommand() *cli.Command {
	return &cli.Command{
		Name:      "imports",
		Usage:     "Print the imports each unit of a descriptor resolves to",
		ArgsUsage: "<descriptor>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "lang",
				Aliases: []string{"l"},
				Usage:   "target language (default: java)",
			},
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "environment snapshot, overriding the descriptor and config",
			},
			&cli.StringSliceFlag{
				Name:    "property",
				Aliases: []string{"p"},
				Usage:   "generation property as key=value (repeatable)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug output to stderr",
			},
		},
		Action: runImports,
	}
}

func runImports(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errMissingDescriptor
	}

	s, err := loadSettings(cmd, configDir(path))
	if err != nil {
		return err
	}
	defer s.sync()

	lang, err := s.language()
	if err != nil {
		return err
	}

	javaLang, ok := lang.(*javalang.Language)
	if !ok {
		return errors.Newf("language %q does not support import listing", s.lang)
	}

	desc, err := model.Load(path)
	if err != nil {
		return err
	}

	gctx := &language.GenerateContext{
		Units:      desc.Units,
		Properties: s.properties,
		Logger:     s.logger,
	}

	if envPath := s.environmentFor(path, desc.EnvironmentPath()); envPath != "" {
		snap, err := env.Load(envPath)
		if err != nil {
			return errors.Wrapf(err, "loading environment for %s", path)
		}

		gctx.Environment = snap
	}

	units, err := javaLang.Imports(gctx)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	st := newStyles(w)

	for _, u := range units {
		f := &output.File{Package: u.Package, Name: u.File}
		fmt.Fprintln(w, st.Header.Render(f.Rel()))

		for _, imp := range u.Imports {
			fmt.Fprintf(w, "  import %s;\n", imp)
		}

		for _, imp := range u.StaticImports {
			fmt.Fprintf(w, "  import static %s;\n", imp)
		}

		if len(u.Imports)+len(u.StaticImports) == 0 {
			fmt.Fprintf(w, "  %s\n", st.Dim.Render("(no imports)"))
		}
	}

	return nil
}
