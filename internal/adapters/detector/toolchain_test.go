package detector_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/c3pm/internal/adapters/detector"
)

func lookPathIn(available ...string) detector.LookPathFunc {
	return func(file string) (string, error) {
		for _, a := range available {
			if a == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", errors.New("executable file not found in $PATH")
	}
}

func TestDetectToolchain(t *testing.T) {
	tests := []struct {
		name      string
		available []string
		wantCC    string
		wantCXX   string
	}{
		{name: "clang preferred", available: []string{"gcc", "g++", "clang", "clang++"}, wantCC: "clang", wantCXX: "clang++"},
		{name: "gcc fallback", available: []string{"gcc", "g++"}, wantCC: "gcc", wantCXX: "g++"},
		{name: "incomplete clang pair skipped", available: []string{"clang", "gcc", "g++"}, wantCC: "gcc", wantCXX: "g++"},
		{name: "nothing found", available: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := detector.DetectToolchain(lookPathIn(tt.available...))

			assert.Equal(t, runtime.NumCPU(), tc.Jobs)
			assert.Equal(t, tt.wantCC, tc.CCompiler)
			assert.Equal(t, tt.wantCXX, tc.CXXCompiler)
		})
	}
}
