package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()
	prev := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
	t.Cleanup(func() { readBuildInfo = prev })
}

func withLinked(t *testing.T, commit, date string) {
	t.Helper()
	prevCommit, prevDate := Commit, Date
	Commit, Date = commit, date
	t.Cleanup(func() { Commit, Date = prevCommit, prevDate })
}

func TestGet(t *testing.T) {
	stamped := &debug.BuildInfo{
		GoVersion: "go1.24.3",
		Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: "3f9a1c7e5b2d4a6f8e0c1b3d5f7a9c2e4b6d8f0a"},
			{Key: "vcs.time", Value: "2026-10-01T09:30:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	t.Run("vcs stamp fills missing values", func(t *testing.T) {
		withLinked(t, unknown, unknown)
		withBuildInfo(t, stamped, true)

		info := Get()
		assert.Equal(t, "3f9a1c7e5b2d4a6f8e0c1b3d5f7a9c2e4b6d8f0a", info.Commit)
		assert.Equal(t, "2026-10-01T09:30:00Z", info.Date)
		assert.True(t, info.Modified)
		assert.Equal(t, "go1.24.3", info.GoVersion)
	})

	t.Run("linked values win", func(t *testing.T) {
		withLinked(t, "abc1234", "2026-09-30")
		withBuildInfo(t, stamped, true)

		info := Get()
		assert.Equal(t, "abc1234", info.Commit)
		assert.Equal(t, "2026-09-30", info.Date)
	})

	t.Run("no build info", func(t *testing.T) {
		withLinked(t, unknown, unknown)
		withBuildInfo(t, nil, false)

		info := Get()
		assert.Equal(t, unknown, info.Commit)
		assert.Equal(t, unknown, info.Date)
		assert.False(t, info.Modified)
		assert.NotEmpty(t, info.GoVersion)
	})
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "0.1.0",
		Commit:    "3f9a1c7e5b2d4a6f8e0c1b3d5f7a9c2e4b6d8f0a",
		Date:      "2026-10-01T09:30:00Z",
		Modified:  true,
		GoVersion: "go1.24.3",
		Platform:  "linux/amd64",
	}
	assert.Equal(t, "nhd 0.1.0, commit 3f9a1c7e5b2d-dirty, built 2026-10-01T09:30:00Z, go1.24.3, linux/amd64", info.String())

	info.Commit, info.Modified = unknown, false
	assert.Equal(t, unknown, info.ShortCommit())
	assert.Contains(t, info.String(), "commit unknown,")
}
