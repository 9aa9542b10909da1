package filesync

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/betterscore/scoreboard-service/internal/domain/game"
	"github.com/betterscore/scoreboard-service/internal/metrics"
)

func readField(t *testing.T, dir string, field Field) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, string(field)))
	if err != nil {
		t.Fatalf("read %s: %v", field, err)
	}
	return string(data)
}

func TestSyncWritesAllFields(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	state := game.NewState(game.DefaultRules())
	if err := w.Sync(state); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	want := map[Field]string{
		FieldHomeScore:     "0",
		FieldAwayScore:     "0",
		FieldPeriod:        "1st",
		FieldTime:          "20:00",
		FieldPowerPlay:     "",
		FieldPowerPlayTime: "0:00",
	}
	for field, content := range want {
		if got := readField(t, dir, field); got != content {
			t.Fatalf("%s: expected %q, got %q", field, content, got)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, StateFile)); !os.IsNotExist(err) {
		t.Fatalf("expected no state snapshot by default, got %v", err)
	}
}

func TestSyncWritesOnlyNamedFields(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	state := game.State{Home: 4, Away: 1, Period: 2, Seconds: 500}
	if err := w.Sync(state, FieldTime); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if got := readField(t, dir, FieldTime); got != "8:20" {
		t.Fatalf("expected 8:20, got %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, string(FieldHomeScore))); !os.IsNotExist(err) {
		t.Fatalf("expected home score untouched, got %v", err)
	}
}

func TestSyncSkipsUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	state := game.NewState(game.DefaultRules())

	if err := w.Sync(state); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	path := filepath.Join(dir, string(FieldHomeScore))
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	state.Away = 1
	if err := w.Sync(state); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(past) {
		t.Fatalf("expected unchanged file to be left alone, mod time %s", info.ModTime())
	}
	if got := readField(t, dir, FieldAwayScore); got != "1" {
		t.Fatalf("expected away 1, got %q", got)
	}
}

func TestSyncLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	if err := w.Sync(game.NewState(game.DefaultRules())); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("unexpected temp file %s", e.Name())
		}
	}
	if len(entries) != len(AllFields) {
		t.Fatalf("expected %d files, got %d", len(AllFields), len(entries))
	}
}

func TestSyncRecreatesRemovedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "overlay")
	w := NewWriter(dir)
	if _, err := w.EnsureDir(); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if err := w.Sync(game.State{Home: 2, Period: 1}, FieldHomeScore); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if got := readField(t, dir, FieldHomeScore); got != "2" {
		t.Fatalf("expected 2, got %q", got)
	}
}

func TestSyncReportsFailuresAndStatus(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	rec := metrics.NewRecorder()
	w := NewWriter(blocker, WithRecorder(rec))

	err := w.Sync(game.NewState(game.DefaultRules()))
	if err == nil {
		t.Fatalf("expected sync error")
	}
	if !strings.Contains(err.Error(), string(FieldHomeScore)) || !strings.Contains(err.Error(), string(FieldPowerPlayTime)) {
		t.Fatalf("expected every file attempted, got %v", err)
	}

	status := w.Status()
	if status.ConsecutiveFailures != 1 || status.LastError == "" || status.IsReady() {
		t.Fatalf("unexpected status %+v", status)
	}
	if snap := rec.Snapshot(); snap.SyncFailures != 1 {
		t.Fatalf("expected 1 recorded failure, got %+v", snap)
	}
}

func TestStatusReadyAfterSuccess(t *testing.T) {
	w := NewWriter(t.TempDir())
	if w.Status().IsReady() {
		t.Fatalf("expected not ready before first sync")
	}
	if err := w.Sync(game.NewState(game.DefaultRules())); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	status := w.Status()
	if !status.IsReady() || status.LastSuccess.IsZero() || status.ConsecutiveFailures != 0 {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestStatusReadyThreshold(t *testing.T) {
	s := Status{LastSuccess: time.Now(), ConsecutiveFailures: 2}
	if !s.IsReady() {
		t.Fatalf("expected ready with 2 failures")
	}
	s.ConsecutiveFailures = 3
	if s.IsReady() {
		t.Fatalf("expected not ready with 3 failures")
	}
}

func TestEnsureDirCreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Documents", "BetterScore")
	w := NewWriter(dir)

	created, err := w.EnsureDir()
	if err != nil || !created {
		t.Fatalf("expected directory created, got %v %v", created, err)
	}
	created, err = w.EnsureDir()
	if err != nil || created {
		t.Fatalf("expected existing directory reused, got %v %v", created, err)
	}
}

func TestNilWriterIsNotConfigured(t *testing.T) {
	var w *Writer
	if err := w.Sync(game.State{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := w.EnsureDir(); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if w.Dir() != "" || w.Status().ConsecutiveFailures != 0 {
		t.Fatalf("expected zero values for nil writer")
	}
}

func TestStateSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, WithStateSnapshot(true))

	state := game.State{Home: 3, Away: 2, Period: 2, Seconds: 734, PowerPlay: "PP: AWAY", PowerPlaySide: game.SideAway, PowerPlaySeconds: 61, Running: true}
	if err := w.Sync(state); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, StateFile))
	if err != nil {
		t.Fatalf("expected state snapshot: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}

	loaded, err := LoadState(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := state
	want.Running = false
	if loaded != want {
		t.Fatalf("expected %+v, got %+v", want, loaded)
	}
}

func TestLoadStateSanitizes(t *testing.T) {
	dir := t.TempDir()
	body := `{"home":1,"away":0,"period":0,"seconds":-4,"powerPlay":"PP: HOME","powerPlaySide":"home","powerPlaySeconds":0}`
	if err := os.WriteFile(filepath.Join(dir, StateFile), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	state, err := LoadState(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if state.Period != 1 || state.Seconds != 0 || state.PowerPlayActive() {
		t.Fatalf("expected sanitized state, got %+v", state)
	}
}

func TestLoadStateMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadState(dir); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, StateFile), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadState(dir); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestRender(t *testing.T) {
	state := game.State{Home: 10, Away: 7, Period: 3, Seconds: 61, PowerPlay: "PP: HOME", PowerPlaySeconds: 119}
	cases := map[Field]string{
		FieldHomeScore:     "10",
		FieldAwayScore:     "7",
		FieldPeriod:        "3rd",
		FieldTime:          "1:01",
		FieldPowerPlay:     "PP: HOME",
		FieldPowerPlayTime: "1:59",
		Field("other.txt"): "",
	}
	for field, want := range cases {
		if got := Render(state, field); got != want {
			t.Fatalf("%s: expected %q, got %q", field, want, got)
		}
	}
}
