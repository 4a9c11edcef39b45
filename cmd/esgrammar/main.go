package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/grammata/esgrammar"
	"github.com/grammata/esgrammar/artifact"
)

var (
	version string = "dev"
	cli     struct {
		Version kong.VersionFlag
		Verbose bool       `short:"v" help:"Enable debug logging."`
		Extract extractCmd `cmd:"" default:"1" help:"Extract and normalize the specification grammar."`
	}
)

type extractCmd struct {
	URL        string `default:"${defaultURL}" help:"Specification URL."`
	CacheDir   string `default:".escache" help:"Directory caching the raw specification."`
	Out        string `default:"es.json" help:"Path of the normalized grammar artifact."`
	InstallDir string `help:"Code generator input directory to install the artifact into."`
}

func (c *extractCmd) Run(log *logrus.Logger) error {
	fs := afero.NewOsFs()
	doc, err := esgrammar.Extract(context.Background(), esgrammar.Options{
		URL:      c.URL,
		CacheDir: c.CacheDir,
		Fs:       fs,
		Log:      log,
	})
	if err != nil {
		return err
	}
	if err := artifact.Write(fs, c.Out, doc); err != nil {
		return err
	}
	log.WithField("path", c.Out).Info("wrote grammar artifact")
	if c.InstallDir != "" {
		if err := artifact.Install(fs, c.Out, c.InstallDir); err != nil {
			return err
		}
		log.WithField("dir", c.InstallDir).Info("installed grammar artifact")
	}
	return nil
}

func main() {
	log := logrus.New()
	kctx := kong.Parse(&cli,
		kong.Description(`Extracts the ECMAScript specification grammar into the schema consumed by the parse-node generator.`),
		kong.Vars{
			"version":    version,
			"defaultURL": esgrammar.DefaultURL,
		},
		kong.Bind(log),
	)
	if cli.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	kctx.FatalIfErrorf(kctx.Run())
}