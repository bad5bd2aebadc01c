package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hellocal/internal/config"
	"hellocal/internal/itinerary"
	"hellocal/internal/render"
)

const tripICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//hellocal test//EN
X-WR-CALNAME:Carl Lisbon
BEGIN:VEVENT
UID:trip@test
SUMMARY:Trip
DTSTART;TZID=Europe/Lisbon:20240110T090000
DTEND;TZID=Europe/Lisbon:20240112T170000
DESCRIPTION:Client: Carl
X-CARLTAG:clientinfo
X-TEMPLATE:itinerary
X-LANG:en
END:VEVENT
END:VCALENDAR
`

func setup(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()

	cal := filepath.Join(dir, "lisbon.ics")
	require.NoError(t, os.WriteFile(cal, []byte(strings.ReplaceAll(tripICS, "\n", "\r\n")), 0o600))

	tplDir := filepath.Join(dir, "templates")
	require.NoError(t, os.MkdirAll(tplDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(tplDir, "itinerary.en.html"),
		[]byte("{{client_name}}: {{clientinfo.Client}} {{day1}} {{day2}}"), 0o600))

	cfg := config.DefaultConfig()
	cfg.TemplateDir = tplDir
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.CacheDir = filepath.Join(dir, "cache")
	return cfg, cal
}

func TestGenerate(t *testing.T) {
	cfg, cal := setup(t)
	g, err := NewGenerator(cfg, cal)
	require.NoError(t, err)

	res, err := g.Generate(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cfg.OutputDir, "lisbon.html"), res.OutputPath)
	assert.Equal(t, "Carl Lisbon: Carl January 10, 2024 January 11, 2024", res.HTML)

	body, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, res.HTML, string(body))

	_, err = g.Generate(context.Background(), false)
	assert.ErrorIs(t, err, render.ErrOutputExists)

	_, err = g.Generate(context.Background(), true)
	assert.NoError(t, err)
}

func TestGenerateErrors(t *testing.T) {
	t.Run("bad timezone", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Timezone = "Nowhere/Land"
		_, err := NewGenerator(cfg, "x.ics")
		assert.Error(t, err)
	})

	t.Run("missing template file", func(t *testing.T) {
		cfg, cal := setup(t)
		cfg.TemplateDir = t.TempDir()
		g, err := NewGenerator(cfg, cal)
		require.NoError(t, err)

		_, err = g.Generate(context.Background(), false)
		assert.ErrorContains(t, err, "template file not found")
	})

	t.Run("bracket tag from config", func(t *testing.T) {
		cfg, cal := setup(t)
		cfg.BracketTag = "viagem"
		g, err := NewGenerator(cfg, cal)
		require.NoError(t, err)

		_, err = g.Build(context.Background())
		var target *itinerary.MissingBracketEventError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, "viagem", target.Tag)
	})
}
