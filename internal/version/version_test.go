package version_test

import (
	"strings"
	"testing"

	"github.com/sbtransport/sbtconsole/internal/version"
)

func TestBannerNamesVersion(t *testing.T) {
	b := version.Banner()
	if !strings.Contains(b, "SBT Console (v"+version.Version+")") {
		t.Errorf("banner missing product line:\n%s", b)
	}
}
