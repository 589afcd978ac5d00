package version

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo(true)
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GitCommit)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)
	assert.True(t, info.YAML)
	assert.False(t, GetBuildInfo(false).YAML)
}

func TestGetBuildInfoParsesBuildDate(t *testing.T) {
	original := BuildDate
	defer func() { BuildDate = original }()

	BuildDate = "2026-01-13T20:00:00Z"
	want, _ := time.Parse(time.RFC3339, BuildDate)
	assert.True(t, GetBuildInfo(true).BuildTime.Equal(want))

	BuildDate = "yesterday"
	assert.True(t, GetBuildInfo(true).BuildTime.IsZero())
}

func TestBuildInfoString(t *testing.T) {
	info := BuildInfo{Version: "1.2.3", GitCommit: "abc123", BuildDate: "today", Platform: "linux/amd64"}
	assert.Equal(t, "exmailer 1.2.3 (commit: abc123, built: today, linux/amd64)", info.String())
}
