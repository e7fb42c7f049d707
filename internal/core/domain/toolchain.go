package domain

// Toolchain captures the host build environment. It is detected once at startup
// and passed explicitly to the build steps that need it.
type Toolchain struct {
	// Jobs is the default number of parallel build jobs.
	Jobs int

	// CCompiler is the detected C compiler. Empty lets CMake pick.
	CCompiler string

	// CXXCompiler is the detected C++ compiler. Empty lets CMake pick.
	CXXCompiler string
}

// Compilers returns the compilers to use for the project: project overrides
// first, then the detected toolchain.
func (t Toolchain) Compilers(p *Project) (cc, cxx string) {
	cc, cxx = t.CCompiler, t.CXXCompiler
	if p != nil && p.CCompiler != "" {
		cc = p.CCompiler
	}
	if p != nil && p.CXXCompiler != "" {
		cxx = p.CXXCompiler
	}
	return cc, cxx
}

// ConfigureSpec describes one invocation of the build-configuration step.
type ConfigureSpec struct {
	SourceDir   string
	BuildDir    string
	Generator   Generator
	CCompiler   string
	CXXCompiler string
}

// BuildSpec describes one invocation of the build step.
type BuildSpec struct {
	BuildDir string
	Jobs     int
	Config   BuildConfig
}
