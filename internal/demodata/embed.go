// Package demodata provides sample data for demo deployments.
package demodata

import (
	"context"
	_ "embed"

	"github.com/sbtransport/sbtconsole/internal/bundle"
)

//go:embed sample.json
var sampleJSON []byte

// Sample returns the embedded export document.
func Sample() []byte {
	return sampleJSON
}

// Load imports the sample document when every table is empty. It reports
// whether anything was loaded; a backend that already holds rows is left
// untouched.
func Load(ctx context.Context, b *bundle.Service) (bool, error) {
	current, err := b.Export(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range current.Counts() {
		if n > 0 {
			return false, nil
		}
	}

	if _, err := b.Import(ctx, sampleJSON); err != nil {
		return false, err
	}
	return true, nil
}
