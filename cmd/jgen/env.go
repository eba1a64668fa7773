package main

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"

	"github.com/rlch/jgen/env"
)

var errMissingSnapshot = errors.New("missing snapshot argument")

func envCommand() *cli.Command {
	return &cli.Command{
		Name:      "env",
		Usage:     "Print the API kinds of a snapshot with their resolved versions",
		ArgsUsage: "<snapshot>",
		Action:    runEnv,
	}
}

func runEnv(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errMissingSnapshot
	}

	snap, err := env.Load(path)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	st := newStyles(w)

	fmt.Fprintln(w, st.Header.Render(snap.Name()))

	for _, dep := range snap.Dependencies() {
		def, ok := snap.Registry().Resolve(dep.Kind, dep.Version)
		if !ok {
			fmt.Fprintf(w, "  %s %s %s %s\n",
				st.Fail.Render(st.SymbolFail), st.Bold.Render(dep.Kind), dep.Version, st.Dim.Render("(unsupported)"))

			continue
		}

		versions := def.Versions
		if versions == "" {
			versions = "*"
		}

		fmt.Fprintf(w, "  %s %s %s %s\n",
			st.Pass.Render(st.SymbolPass), st.Bold.Render(dep.Kind), dep.Version, st.Dim.Render("("+versions+")"))
	}

	fmt.Fprintf(w, "  %s %d types\n", st.SymbolItem, len(snap.Types()))

	return nil
}
