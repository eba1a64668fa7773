package main

import (
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rlch/jgen"
	"github.com/rlch/jgen/language"
)

const defaultLanguage = "java"

var (
	errNoDescriptors   = errors.New("no descriptors found")
	errInvalidProperty = errors.New("invalid property")
	errUnknownLanguage = errors.New("unknown language")
)

// settings are the flag values merged over the nearest .jgen.yaml.
type settings struct {
	cfg        *jgen.Config
	lang       string
	env        string
	out        string
	delimiter  string
	properties map[string]string
	logger     *zap.Logger
}

// loadSettings reads the config nearest to dir and applies the command's flags.
// Flags that a command does not define read as empty.
func loadSettings(cmd *cli.Command, dir string) (*settings, error) {
	cfg, err := jgen.LoadConfig(dir)

	switch {
	case errors.Is(err, jgen.ErrConfigNotFound):
		cfg = &jgen.Config{}
	case err != nil:
		return nil, err
	}

	logger, err := newLogger(cmd.Bool("verbose"))
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}

	s := &settings{
		cfg:        cfg,
		lang:       firstNonEmpty(cmd.String("lang"), cfg.Lang, defaultLanguage),
		env:        cmd.String("env"),
		out:        firstNonEmpty(cmd.String("out"), cfg.OutputRoot()),
		delimiter:  cfg.Delimiter(),
		properties: make(map[string]string, len(cfg.Properties)),
		logger:     logger,
	}

	if le := cmd.String("line-ending"); le != "" {
		s.delimiter = jgen.ParseLineDelimiter(le)
	}

	maps.Copy(s.properties, cfg.Properties)

	for _, p := range cmd.StringSlice("property") {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, errors.WithHintf(
				errors.Wrapf(errInvalidProperty, "%q", p),
				"properties are written key=value",
			)
		}

		s.properties[strings.TrimSpace(k)] = v
	}

	return s, nil
}

// language looks up the configured target language.
func (s *settings) language() (language.Language, error) { //nolint:ireturn
	lang := language.Get(s.lang)
	if lang == nil {
		return nil, errors.WithHintf(
			errors.Wrapf(errUnknownLanguage, "%s", s.lang),
			"available: %v", language.RegisteredLanguages(),
		)
	}

	return lang, nil
}

// environmentFor picks the snapshot for a descriptor: the --env flag, then the
// descriptor's own environment, then the config.
func (s *settings) environmentFor(path, declared string) string {
	return firstNonEmpty(s.env, declared, s.cfg.EnvironmentFor(path))
}

func (s *settings) sync() {
	_ = s.logger.Sync()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

// collectDescriptors expands directories into the YAML descriptors below them.
// Config files are skipped.
func collectDescriptors(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", arg)
		}

		if !info.IsDir() {
			files = append(files, arg)

			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.IsDir() && isDescriptor(path) {
				files = append(files, path)
			}

			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walking %s", arg)
		}
	}

	return files, nil
}

func isDescriptor(path string) bool {
	if slices.Contains(jgen.DefaultConfigNames, filepath.Base(path)) {
		return false
	}

	return isYAML(path)
}

func isYAML(path string) bool {
	ext := filepath.Ext(path)

	return ext == ".yaml" || ext == ".yml"
}
