package detector

import (
	"os/exec"
	"runtime"

	"go.trai.ch/c3pm/internal/core/domain"
)

// LookPathFunc resolves an executable name on PATH.
type LookPathFunc func(file string) (string, error)

// compilerPairs is the preference order for C/C++ compiler pairs.
var compilerPairs = [][2]string{
	{"clang", "clang++"},
	{"gcc", "g++"},
}

// DetectToolchain returns the host toolchain: one job per CPU and the first
// compiler pair whose both halves are on PATH. When no pair is complete the
// compilers are left empty so CMake picks its own defaults.
func DetectToolchain(lookPath LookPathFunc) domain.Toolchain {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	tc := domain.Toolchain{Jobs: runtime.NumCPU()}
	for _, pair := range compilerPairs {
		if _, err := lookPath(pair[0]); err != nil {
			continue
		}
		if _, err := lookPath(pair[1]); err != nil {
			continue
		}
		tc.CCompiler, tc.CXXCompiler = pair[0], pair[1]
		break
	}
	return tc
}
