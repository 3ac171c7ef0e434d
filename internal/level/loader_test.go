package level_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/match3/internal/board"
	"github.com/vovakirdan/match3/internal/level"
)

const tutorialYAML = `
id: "t01"
name: "Intro"
size: { w: 5, h: 5 }
colors: 4
moves: 10
goals:
  - { kind: red, target: 5 }
jelly:
  - { x: 1, y: 1, layers: 2 }
holes:
  - { x: 0, y: 0 }
`

const layoutYAML = `
id: "t02"
colors: 3
time_limit: 45
goals:
  - { kind: score, target: 1000 }
layout:
  - "RGB"
  - "GBR"
  - "RGb"
`

const brokenYAML = `
id: "t03"
size: { w: 2, h: 9 }
colors: 4
moves: 10
goals:
  - { kind: red, target: 5 }
`

func writeLevels(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

func TestLoaderLoadAll(t *testing.T) {
	dir := writeLevels(t, map[string]string{
		"b.yaml":       layoutYAML,
		"nested/a.yml": tutorialYAML,
		"broken.yaml":  brokenYAML,
		"notes.txt":    "not a level",
		"garbage.yaml": "id: [",
	})
	loader := level.NewLoader(dir)

	lvls, err := loader.LoadAll()
	require.NoError(t, err)
	require.Len(t, lvls, 2)
	assert.Equal(t, "t01", lvls[0].ID)
	assert.Equal(t, "t02", lvls[1].ID)

	ids, err := loader.ListIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"t01", "t02"}, ids)

	problems, err := loader.Check()
	require.NoError(t, err)
	assert.Len(t, problems, 2)
	var verr level.ValidationError
	require.True(t, errors.As(problems["broken.yaml"], &verr))
	assert.Equal(t, "INVALID_SIZE", verr.Code)
}

func TestLoaderLoadByID(t *testing.T) {
	dir := writeLevels(t, map[string]string{"a.yaml": tutorialYAML, "b.yaml": layoutYAML})
	loader := level.NewLoader(dir)

	lvl, err := loader.LoadByID("t01")
	require.NoError(t, err)
	assert.Equal(t, "Intro", lvl.Title())
	assert.Equal(t, 5, lvl.Width)
	assert.Equal(t, 3, lvl.MinMatch)
	assert.Equal(t, []board.Coord{board.C(1, 1), board.C(1, 1)}, lvl.Jelly)
	assert.Equal(t, []board.Coord{board.C(0, 0)}, lvl.Holes)
	assert.Equal(t, filepath.Join(dir, "a.yaml"), lvl.FilePath)

	lvl, err = loader.LoadByID("t02")
	require.NoError(t, err)
	assert.Equal(t, "t02", lvl.Title())
	assert.Equal(t, 3, lvl.Width)
	assert.Equal(t, 3, lvl.Height)
	assert.Equal(t, "45s", lvl.TimeLimit.String())

	_, err = loader.LoadByID("missing")
	assert.True(t, errors.Is(err, level.ErrNotFound))
}

func TestLevelStartsEngine(t *testing.T) {
	dir := writeLevels(t, map[string]string{"b.yaml": layoutYAML})
	lvl, err := level.NewLoader(dir).LoadByID("t02")
	require.NoError(t, err)

	e, err := board.New(lvl.ToConfig(), board.WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, "RGB\nGBR\nRGb", e.Grid().String())
}

func TestCampaign(t *testing.T) {
	campaign := level.Campaign()

	problems, err := campaign.Check()
	require.NoError(t, err)
	assert.Empty(t, problems)

	lvls, err := campaign.List()
	require.NoError(t, err)
	require.NotEmpty(t, lvls)

	for _, lvl := range lvls {
		e, err := board.New(lvl.ToConfig(), board.WithSeed(42))
		require.NoError(t, err, lvl.ID)
		assert.NotEmpty(t, e.LegalMoves(), lvl.ID)
		assert.NotEmpty(t, lvl.Describe())
	}
}

func TestSourcesShadowing(t *testing.T) {
	override := `
id: "01-first-steps"
name: "Custom"
size: { w: 6, h: 6 }
colors: 3
moves: 5
goals:
  - { kind: green, target: 3 }
`
	dir := writeLevels(t, map[string]string{"custom.yaml": override})
	src := level.Sources{level.NewLoader(dir), level.Campaign()}

	lvl, err := src.Level("01-first-steps")
	require.NoError(t, err)
	assert.Equal(t, "Custom", lvl.Name)

	lvl, err = src.Level("02-colour-mix")
	require.NoError(t, err)
	assert.Equal(t, "Colour Mix", lvl.Name)

	all, err := src.List()
	require.NoError(t, err)
	campaign, err := level.Campaign().List()
	require.NoError(t, err)
	assert.Len(t, all, len(campaign))

	_, err = src.Level("nope")
	assert.ErrorIs(t, err, level.ErrNotFound)
}
