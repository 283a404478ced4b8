//go:build e2e && unix

package main

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWheelTurnsPage(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	deck, err := tf.WriteDeck("deck.md", "Alpha", "Beta", "Gamma")
	require.NoError(t, err)

	require.NoError(t, tf.StartApp(deck), "Failed to start app")
	require.True(t, tf.Ready(), "Should draw the first page")
	require.True(t, tf.SeePlain("Page 1/3"))

	// page_height 15 at 3 per notch
	tf.WheelDown(5)
	if !tf.OutputContainsPlain("Page 2/3", 3*time.Second) {
		tf.DumpTailOnFail(t, "wheel-down", 4096)
		t.Fatal("wheel down should turn to page 2")
	}
	require.True(t, tf.SeePlain("Beta"))

	// let the scroll settle so the page lock lifts
	time.Sleep(500 * time.Millisecond)

	tf.WheelUp(5)
	require.NoError(t, tf.WaitForE(func(s string) bool {
		return lastStatus(tf.SnapshotPlain()) == "Page 1/3"
	}, 3*time.Second, "wheel up should return to page 1"))
}

func TestJumpToPage(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	deck, err := tf.WriteDeck("deck.md", "Alpha", "Beta", "Gamma")
	require.NoError(t, err)

	require.NoError(t, tf.StartApp(deck), "Failed to start app")
	require.True(t, tf.Ready(), "Should draw the first page")

	tf.JumpTo(3)
	require.True(t, tf.SeePlain("Page 3/3"), "Should jump to the last page")
	require.True(t, tf.SeePlain("Gamma"))

	tf.JumpTo(7)
	require.True(t, tf.WaitForStatusMessage("No page 7", 2*time.Second))
}

func TestSampleDeckWithoutContent(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should draw the first page")
	require.True(t, tf.SeePlain("wheelpage"), "Should show the sample deck")
}

var pageRe = regexp.MustCompile(`Page \d+/\d+`)

// lastStatus returns the most recent "Page n/m" marker in the output
func lastStatus(s string) string {
	matches := pageRe.FindAllString(s, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1]
}
