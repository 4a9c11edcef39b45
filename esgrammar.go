// Package esgrammar extracts the formal grammar embedded in the ECMAScript
// specification and normalizes it into the flat schema the parse-node code
// generator consumes.
//
// The pipeline is a pure, synchronous transform: fetch the document,
// extract grammar fragments with their section context, select the core
// language grammar, parse each fragment's notation, and normalize it.
// Fragments have no cross dependencies but the data is small, so they are
// processed strictly in sequence. Any fragment the normalizer cannot
// represent aborts the whole run; a partial document would silently
// corrupt the generator's assumptions downstream.
package esgrammar

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/grammata/esgrammar/normalize"
	"github.com/grammata/esgrammar/notation"
	"github.com/grammata/esgrammar/spec"
)

// DefaultURL is the living ECMAScript specification.
const DefaultURL = "https://tc39.es/ecma262/"

// Options configure an extraction run. Zero values fall back to sensible
// defaults: DefaultURL, the OS filesystem, http.DefaultClient and a
// discarding logger.
type Options struct {
	URL      string
	CacheDir string
	Fs       afero.Fs
	Client   *http.Client
	Log      logrus.FieldLogger
}

func (o *Options) defaults() {
	if o.URL == "" {
		o.URL = DefaultURL
	}
	if o.CacheDir == "" {
		o.CacheDir = ".escache"
	}
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Client == nil {
		o.Client = http.DefaultClient
	}
	if o.Log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		o.Log = l
	}
}

// Extract runs the full pipeline and returns the normalized grammar
// document. ctx applies to the fetch only; the rest of the pipeline is a
// finite in-memory transform.
func Extract(ctx context.Context, opts Options) (*normalize.Document, error) {
	opts.defaults()

	fetcher := &spec.Fetcher{Fs: opts.Fs, Client: opts.Client, CacheDir: opts.CacheDir, Log: opts.Log}
	raw, err := fetcher.Fetch(ctx, opts.URL)
	if err != nil {
		return nil, err
	}

	frags, err := spec.ExtractFragments(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	selected := spec.Select(frags)
	opts.Log.WithFields(logrus.Fields{
		"found":    len(frags),
		"selected": len(selected),
	}).Info("selected grammar fragments")

	doc := normalize.NewDocument()
	for _, frag := range selected {
		file, err := notation.Parse(frag.Text)
		if err != nil {
			return nil, fmt.Errorf("parsing grammar fragment %q: %w", frag.Text, err)
		}
		res, err := normalize.Fragment(frag.Text, file)
		if err != nil {
			return nil, err
		}
		doc.Append(res)
	}
	opts.Log.WithFields(logrus.Fields{
		"sequenceProductions": len(doc.SequenceProductions),
		"oneOfProductions":    len(doc.OneOfProductions),
	}).Info("normalized grammar")
	return doc, nil
}
