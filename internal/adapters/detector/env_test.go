package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tape/internal/adapters/detector"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		isTTY    bool
		ci       string
		expected detector.OutputMode
	}{
		{name: "terminal outside CI overwrites", isTTY: true, ci: "", expected: detector.ModeOverwrite},
		{name: "CI=true scrolls", isTTY: true, ci: "true", expected: detector.ModeScroll},
		{name: "CI=1 scrolls", isTTY: true, ci: "1", expected: detector.ModeScroll},
		{name: "CI=false keeps terminal", isTTY: true, ci: "false", expected: detector.ModeOverwrite},
		{name: "pipe scrolls", isTTY: false, ci: "", expected: detector.ModeScroll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.Detect(tt.isTTY, tt.ci))
		})
	}
}

func TestDetectEnvironment_CI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, detector.ModeScroll, detector.DetectEnvironment())
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name         string
		autoDetected detector.OutputMode
		userFlag     string
		expected     detector.OutputMode
	}{
		{name: "auto keeps detection", autoDetected: detector.ModeOverwrite, userFlag: "auto", expected: detector.ModeOverwrite},
		{name: "empty keeps detection", autoDetected: detector.ModeScroll, userFlag: "", expected: detector.ModeScroll},
		{name: "overwrite forces overwrite", autoDetected: detector.ModeScroll, userFlag: "overwrite", expected: detector.ModeOverwrite},
		{name: "progress forces overwrite", autoDetected: detector.ModeScroll, userFlag: "progress", expected: detector.ModeOverwrite},
		{name: "scroll forces scroll", autoDetected: detector.ModeOverwrite, userFlag: "scroll", expected: detector.ModeScroll},
		{name: "ci forces scroll", autoDetected: detector.ModeOverwrite, userFlag: "ci", expected: detector.ModeScroll},
		{name: "linear forces scroll", autoDetected: detector.ModeOverwrite, userFlag: "linear", expected: detector.ModeScroll},
		{name: "unknown keeps detection", autoDetected: detector.ModeOverwrite, userFlag: "fancy", expected: detector.ModeOverwrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.ResolveMode(tt.autoDetected, tt.userFlag))
		})
	}
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, detector.ModeAuto, detector.ParseMode("auto"))
	assert.Equal(t, detector.ModeScroll, detector.ParseMode("ci"))
	assert.Equal(t, detector.ModeOverwrite, detector.ParseMode("overwrite"))
	assert.Equal(t, "scroll", detector.ModeScroll.String())
	assert.Equal(t, "auto", detector.ModeAuto.String())
}
