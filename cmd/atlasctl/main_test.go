package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/methane-report-service/internal/adapter/browser"
	"github.com/couchcryptid/methane-report-service/internal/domain"
)

var cliTime = time.Date(2025, time.May, 2, 8, 30, 0, 0, time.UTC)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmdWithClock(clockwork.NewFakeClockAt(cliTime))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--quiet"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSampleThenRender(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "report.html")

	_, err := run(t, "sample", "--dir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "sample_measurement.json"))
	assert.FileExists(t, filepath.Join(dir, sampleFigure))

	_, err = run(t, "render", "--dir", dir, "-o", out, "--layout", "split")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "Bacia de Campos")
	assert.Contains(t, html, "Escala Máxima (ppb)")
	assert.Contains(t, html, "data:image/png;base64,")
}

func TestSample_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "sample", "--dir", dir)
	require.NoError(t, err)

	_, err = run(t, "sample", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = run(t, "sample", "--dir", dir, "--force")
	require.NoError(t, err)
}

func TestRender_Stdout(t *testing.T) {
	stdout, err := run(t, "render", "--dir", t.TempDir(), "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "<!doctype html>")
	assert.Contains(t, stdout, "Rio de Janeiro")
}

func TestRender_Deterministic(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "sample", "--dir", dir)
	require.NoError(t, err)

	first, err := run(t, "render", "--dir", dir, "-o", "-")
	require.NoError(t, err)
	second, err := run(t, "render", "--dir", dir, "-o", "-")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_Profile(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "perfil.yaml")
	require.NoError(t, os.WriteFile(profile, []byte("layout: sidebar\nbrand:\n  app_name: ATLAS TESTE\n"), 0o644))

	stdout, err := run(t, "render", "--dir", dir, "--profile", profile, "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ATLAS TESTE")
	assert.Contains(t, stdout, `class="stage panel-only"`)
}

func TestRender_UnknownLayout(t *testing.T) {
	_, err := run(t, "render", "--dir", t.TempDir(), "--layout", "poster", "-o", "-")
	require.Error(t, err)
}

func TestExport_InvalidOptions(t *testing.T) {
	_, err := run(t, "export", "--dir", t.TempDir(), "--format", "gif")
	require.ErrorIs(t, err, browser.ErrInvalidExport)

	_, err = run(t, "export", "--dir", t.TempDir(), "--format", "pdf", "--page", "A5")
	require.ErrorIs(t, err, browser.ErrInvalidExport)
}

func TestSampleRecord_Resolves(t *testing.T) {
	data, err := json.Marshal(sampleRecord(cliTime))
	require.NoError(t, err)
	var overrides domain.Overrides
	require.NoError(t, json.Unmarshal(data, &overrides))

	rec := domain.Resolve(domain.DefaultRecord(), overrides)
	assert.Equal(t, "Bacia de Campos", rec.Unit)
	assert.False(t, rec.PlumeIdentified)
	assert.Equal(t, "08h30", rec.LocalTimeLabel)
	require.NotNil(t, rec.ColorbarMaxPpb)
	assert.InDelta(t, 1200.0, *rec.ColorbarMaxPpb, 1e-9)
	assert.Len(t, rec.Passes, 2)
}
