package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Increment(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "posts", 100, 10)

	tracker.Start()
	tracker.Increment(25)
	tracker.Increment(25)
	tracker.Increment(80)

	assert.Equal(t, 100, tracker.Current(), "capped at total")
	output := buf.String()
	assert.Contains(t, output, "posts: 25/100 (25.0%)")
	assert.Contains(t, output, "posts: 100/100 (100.0%)")
}

func TestProgressTracker_ReportInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "creators", 100, 50)

	tracker.Start()
	tracker.Increment(10)
	assert.Empty(t, buf.String(), "below the interval nothing is printed")

	tracker.Increment(40)
	assert.Equal(t, 1, strings.Count(buf.String(), "\r"))
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "posts", 10, 1)

	tracker.Increment(5)
	tracker.Finish()

	assert.Empty(t, buf.String())
	assert.Zero(t, tracker.Current())
	assert.Zero(t, tracker.Elapsed())
}

func TestProgressTracker_FinishKeepsCount(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "posts", 10, 100)

	tracker.Start()
	tracker.Increment(4)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "posts: 4/10 (40.0%)")
	assert.True(t, strings.HasSuffix(output, "\n"))
}
