package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/betterscore/scoreboard-service/internal/domain/game"
	"github.com/betterscore/scoreboard-service/internal/filesync"
)

// SampleState returns a mid-game state with an active home power play.
func SampleState() game.State {
	return game.State{
		Home:             2,
		Away:             1,
		Period:           2,
		Seconds:          754,
		PowerPlay:        game.DefaultHomeLabel,
		PowerPlaySide:    game.SideHome,
		PowerPlaySeconds: 95,
	}
}

// NewTempWriter returns a file sync writer rooted in a temp dir.
func NewTempWriter(t *testing.T, opts ...filesync.Option) *filesync.Writer {
	t.Helper()
	return filesync.NewWriter(t.TempDir(), opts...)
}

// ReadField returns the current contents of an overlay file.
func ReadField(t *testing.T, dir string, field filesync.Field) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, string(field)))
	if err != nil {
		t.Fatalf("failed to read %s: %v", field, err)
	}
	return string(data)
}
