package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rlch/jgen/env"
	"github.com/rlch/jgen/language"
	"github.com/rlch/jgen/model"
	"github.com/rlch/jgen/output"
)

// rebuildDelay coalesces the burst of events an editor save produces.
const rebuildDelay = 100 * time.Millisecond

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"gen"},
		Usage:     "Generate source files from descriptors",
		ArgsUsage: "[descriptors or directories...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "lang",
				Aliases: []string{"l"},
				Usage:   "target language (default: java)",
				Sources: cli.EnvVars("JGEN_LANG"),
			},
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "environment snapshot, overriding descriptors and config",
				Sources: cli.EnvVars("JGEN_ENV"),
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "source root (default: directory of each descriptor)",
			},
			&cli.StringFlag{
				Name:  "line-ending",
				Usage: "line delimiter: lf, crlf, cr or a literal string",
			},
			&cli.StringSliceFlag{
				Name:    "property",
				Aliases: []string{"p"},
				Usage:   "generation property as key=value (repeatable)",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "regenerate when descriptors or snapshots change",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug output to stderr",
			},
		},
		Action: runGenerate,
	}
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		args = []string{"."}
	}

	s, err := loadSettings(cmd, configDir(args[0]))
	if err != nil {
		return err
	}
	defer s.sync()

	lang, err := s.language()
	if err != nil {
		return err
	}

	g := &generator{
		settings: s,
		lang:     lang,
		loader:   env.NewLoader(),
		w:        cmd.Root().Writer,
		styles:   newStyles(cmd.Root().Writer),
	}

	err = g.run(args)

	if !cmd.Bool("watch") {
		return err
	}

	if err != nil {
		g.failed(err)
	}

	return g.watch(ctx, args)
}

// configDir is where the config search for a descriptor argument starts.
func configDir(arg string) string {
	info, err := os.Stat(arg)
	if err == nil && info.IsDir() {
		return arg
	}

	return filepath.Dir(arg)
}

type generator struct {
	*settings

	lang   language.Language
	loader *env.Loader
	w      io.Writer
	styles *styles
}

// run generates every descriptor below args once.
func (g *generator) run(args []string) error {
	files, err := collectDescriptors(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return errors.WithHintf(errNoDescriptors, "looked in %v for *.yaml and *.yml files", args)
	}

	for _, path := range files {
		err := g.generateFile(path)
		if err != nil {
			return err
		}
	}

	return nil
}

func (g *generator) generateFile(path string) error {
	desc, err := model.Load(path)
	if err != nil {
		return err
	}

	if len(desc.Units) == 0 {
		g.logger.Debug("skipping descriptor without units", zap.String("path", path))

		return nil
	}

	gctx := &language.GenerateContext{
		Units:         desc.Units,
		LineDelimiter: g.delimiter,
		Properties:    g.properties,
		Logger:        g.logger.With(zap.String("descriptor", path)),
	}

	environment, err := g.environment(path, desc.EnvironmentPath())
	if err != nil {
		return err
	}

	if environment != nil {
		gctx.Environment = environment
	}

	files, err := g.lang.Generate(gctx)
	if err != nil {
		return errors.Wrapf(err, "generating %s", path)
	}

	writer := output.New(firstNonEmpty(g.out, filepath.Dir(path)))

	for _, f := range files {
		written, err := writer.Write(f)
		if err != nil {
			return err
		}

		fmt.Fprintf(g.w, "%s %s\n", g.styles.Pass.Render(g.styles.SymbolPass), g.styles.Path.Render(written))
	}

	return nil
}

// environment loads the snapshot chosen for the descriptor at path, or returns
// nil when none is configured.
func (g *generator) environment(path, declared string) (*env.Snapshot, error) {
	envPath := g.environmentFor(path, declared)
	if envPath == "" {
		g.logger.Debug("no environment snapshot", zap.String("descriptor", path))

		return nil, nil //nolint:nilnil
	}

	snap, err := g.loader.Load(envPath)
	if err != nil {
		return nil, errors.Wrapf(err, "loading environment for %s", path)
	}

	g.logger.Debug("loaded environment",
		zap.String("path", envPath),
		zap.String("name", snap.Name()),
	)

	return snap, nil
}

func (g *generator) failed(err error) {
	fmt.Fprintf(g.w, "%s %s\n", g.styles.Fail.Render(g.styles.SymbolFail), err)

	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(g.w, "  %s\n", g.styles.Dim.Render(hint))
	}
}

// watch regenerates after changes to descriptors and the snapshots they load,
// until ctx is done.
func (g *generator) watch(ctx context.Context, args []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer watcher.Close() //nolint:errcheck

	g.watchPaths(watcher, args)

	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !isYAML(event.Name) {
				continue
			}

			g.logger.Debug("change detected", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			pending = time.After(rebuildDelay)

		case <-pending:
			pending = nil

			g.loader.Clear()

			err := g.run(args)
			if err != nil {
				g.failed(err)
			}

			g.watchPaths(watcher, args)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			g.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// watchPaths adds the directories holding args and every loaded snapshot.
func (g *generator) watchPaths(watcher *fsnotify.Watcher, args []string) {
	dirs := make(map[string]bool)

	for _, arg := range args {
		dirs[configDir(arg)] = true

		if info, err := os.Stat(arg); err == nil && info.IsDir() {
			_ = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
				if err == nil && d.IsDir() {
					dirs[path] = true
				}

				return nil
			})
		}
	}

	for path := range g.loader.Cached() {
		dirs[filepath.Dir(path)] = true
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			g.logger.Warn("cannot watch directory", zap.String("dir", dir), zap.Error(err))
		}
	}

	g.logger.Info("watching for changes", zap.Int("directories", len(dirs)))
}
