package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Language is a language standard supported by the scaffolder, e.g. "C17" or "C++20".
type Language string

// Supported language standards.
const (
	LanguageC99   Language = "C99"
	LanguageC11   Language = "C11"
	LanguageC17   Language = "C17"
	LanguageC23   Language = "C23"
	LanguageCpp98 Language = "C++98"
	LanguageCpp11 Language = "C++11"
	LanguageCpp14 Language = "C++14"
	LanguageCpp17 Language = "C++17"
	LanguageCpp20 Language = "C++20"
	LanguageCpp23 Language = "C++23"
)

// DefaultLanguage is used when no language is requested.
const DefaultLanguage = LanguageCpp23

var languages = []Language{
	LanguageC99, LanguageC11, LanguageC17, LanguageC23,
	LanguageCpp98, LanguageCpp11, LanguageCpp14, LanguageCpp17, LanguageCpp20, LanguageCpp23,
}

// ParseLanguage accepts the manifest form ("C++17") as well as the CLI form ("cpp17", "c11").
func ParseLanguage(s string) (Language, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.Replace(v, "CPP", "C++", 1)
	l := Language(v)
	if slices.Contains(languages, l) {
		return l, nil
	}
	return "", zerr.With(ErrUnknownLanguage, "language", s)
}

// IsC reports whether the language is a C standard.
func (l Language) IsC() bool {
	return !l.IsCpp()
}

// IsCpp reports whether the language is a C++ standard.
func (l Language) IsCpp() bool {
	return strings.HasPrefix(string(l), "C++")
}

// Standard returns the numeric standard, e.g. "17" for C++17.
func (l Language) Standard() string {
	return strings.TrimPrefix(strings.TrimPrefix(string(l), "C++"), "C")
}

// String returns the manifest representation.
func (l Language) String() string {
	return string(l)
}

// LanguageNames lists the CLI spellings of every supported standard.
func LanguageNames() []string {
	names := make([]string, len(languages))
	for i, l := range languages {
		names[i] = strings.ToLower(strings.Replace(string(l), "C++", "cpp", 1))
	}
	return names
}

// Generator is a CMake generator name as passed to `cmake -G`.
type Generator string

var generators = []Generator{
	"Visual Studio 17 2022",
	"Visual Studio 16 2019",
	"Visual Studio 15 2017",
	"Visual Studio 14 2015",
	"Borland Makefiles",
	"NMake Makefiles",
	"NMake Makefiles JOM",
	"MSYS Makefiles",
	"MinGW Makefiles",
	"Green Hills MULTI",
	"Unix Makefiles",
	"Ninja",
	"Ninja Multi-Config",
	"Watcom WMake",
	"CodeBlocks - MinGW Makefiles",
	"CodeBlocks - NMake Makefiles",
	"CodeBlocks - NMake Makefiles JOM",
	"CodeBlocks - Ninja",
	"CodeBlocks - Unix Makefiles",
	"CodeLite - MinGW Makefiles",
	"CodeLite - NMake Makefiles",
	"CodeLite - Ninja",
	"CodeLite - Unix Makefiles",
	"Eclipse CDT4 - NMake Makefiles",
	"Eclipse CDT4 - MinGW Makefiles",
	"Eclipse CDT4 - Ninja",
	"Eclipse CDT4 - Unix Makefiles",
	"Kate - MinGW Makefiles",
	"Kate - NMake Makefiles",
	"Kate - Ninja",
	"Kate - Ninja Multi-Config",
	"Kate - Unix Makefiles",
	"Sublime Text 2 - MinGW Makefiles",
	"Sublime Text 2 - NMake Makefiles",
	"Sublime Text 2 - Ninja",
	"Sublime Text 2 - Unix Makefiles",
}

// ParseGenerator validates a generator name. Matching is exact because CMake is case-sensitive.
// An empty string yields the zero Generator, meaning "let CMake choose".
func ParseGenerator(s string) (Generator, error) {
	if s == "" {
		return "", nil
	}
	g := Generator(s)
	if slices.Contains(generators, g) {
		return g, nil
	}
	return "", zerr.With(ErrUnknownGenerator, "generator", s)
}

// GeneratorNames lists every supported generator.
func GeneratorNames() []string {
	names := make([]string, len(generators))
	for i, g := range generators {
		names[i] = string(g)
	}
	return names
}

// String returns the generator name.
func (g Generator) String() string {
	return string(g)
}

// BuildConfig is a CMake build configuration.
type BuildConfig string

// Supported build configurations.
const (
	BuildConfigDebug          BuildConfig = "Debug"
	BuildConfigRelWithDebInfo BuildConfig = "RelWithDebInfo"
	BuildConfigRelease        BuildConfig = "Release"
	BuildConfigMinSizeRel     BuildConfig = "MinSizeRel"
)

// ParseBuildConfig matches a configuration name case-insensitively.
func ParseBuildConfig(s string) (BuildConfig, error) {
	for _, c := range []BuildConfig{
		BuildConfigDebug, BuildConfigRelWithDebInfo, BuildConfigRelease, BuildConfigMinSizeRel,
	} {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", zerr.With(ErrUnknownBuildConfig, "config", s)
}

// String returns the configuration name.
func (c BuildConfig) String() string {
	return string(c)
}

// Project describes a c3pm project as stored in its manifest.
type Project struct {
	Name        string
	Language    Language
	Generator   Generator
	CCompiler   string
	CXXCompiler string

	// Dirs maps well-known keys ("sources", "headers", "build") to directories relative to the project root.
	Dirs map[string]string

	Dependencies []Dependency
}

// NewProject returns a project with the default directory layout.
func NewProject(name string, lang Language, gen Generator) *Project {
	return &Project{
		Name:      name,
		Language:  lang,
		Generator: gen,
		Dirs: map[string]string{
			"sources": DefaultSourcesDir,
			"headers": DefaultHeadersDir,
			"build":   DefaultBuildDir,
		},
	}
}

func (p *Project) dir(key, fallback string) string {
	if d, ok := p.Dirs[key]; ok && d != "" {
		return d
	}
	return fallback
}

// SourcesDir returns the sources directory relative to the project root.
func (p *Project) SourcesDir() string {
	return p.dir("sources", DefaultSourcesDir)
}

// HeadersDir returns the headers directory relative to the project root.
func (p *Project) HeadersDir() string {
	return p.dir("headers", DefaultHeadersDir)
}

// BuildDir returns the CMake binary directory relative to the project root.
func (p *Project) BuildDir() string {
	return p.dir("build", DefaultBuildDir)
}
