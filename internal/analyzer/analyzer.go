package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkgpilot/pkgpilot-mcp/pkg/types"
)

// Validation errors surfaced to the tool layer. Malformed input is the one
// caller-visible failure mode of the system.
var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotDirectory    = errors.New("path is not a directory")
	ErrNoProjectFiles  = errors.New("directory does not contain a .NET project")
)

const (
	// maxScanFiles caps how many source files the analyzer reads per run.
	maxScanFiles = 2000
	// maxFileBytes caps how much of each file is read.
	maxFileBytes = 512 * 1024
)

// Directories that never carry project signals.
var skipDirs = map[string]bool{
	".git":         true,
	"bin":          true,
	"obj":          true,
	"node_modules": true,
	"packages":     true,
	".vs":          true,
	"wwwroot":      true,
}

var (
	packageReferenceRe = regexp.MustCompile(`<PackageReference\s+Include="([^"]+)"(?:\s+Version="([^"]+)")?`)
	packagesConfigRe   = regexp.MustCompile(`<package\s+id="([^"]+)"\s+version="([^"]+)"`)
)

// Analyzer scans a local CMS project tree and derives ProjectSignals using
// regex and substring heuristics. It deliberately does not parse source
// with a compiler front end; signals are best-effort.
type Analyzer struct{}

// New creates an Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze walks the project at rootPath and returns its signals. The only
// errors returned are input-validation failures; an unusual but readable
// tree yields sparse signals, not an error.
func (a *Analyzer) Analyze(ctx context.Context, rootPath string) (*types.ProjectSignals, error) {
	if err := ValidatePath(rootPath); err != nil {
		return nil, err
	}

	scan := &scanState{
		installed:   make(map[string]string),
		featureHits: make(map[string]bool),
		patternHits: make(map[string]bool),
		domainVotes: make(map[string]int),
	}

	filesRead := 0
	_ = filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if info.IsDir() {
			if skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if filesRead >= maxScanFiles {
			return filepath.SkipAll
		}

		ext := strings.ToLower(filepath.Ext(path))
		name := strings.ToLower(info.Name())
		switch {
		case ext == ".csproj" || name == "packages.config":
			filesRead++
			scan.readProjectFile(path)
		case ext == ".cs" || ext == ".cshtml" || name == "appsettings.json":
			filesRead++
			scan.readSourceFile(path)
		}
		return nil
	})

	return scan.signals(filesRead), nil
}

// ValidatePath checks that path points at a readable directory containing
// .NET project files.
func ValidatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}
	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}

	f, err := os.Open(path)
	if err != nil {
		return ErrPathNotReadable
	}
	_ = f.Close()

	hasProjectFiles := false
	_ = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() && skipDirs[info.Name()] {
			return filepath.SkipDir
		}
		if !info.IsDir() {
			name := strings.ToLower(info.Name())
			if strings.HasSuffix(name, ".csproj") || name == "packages.config" {
				hasProjectFiles = true
				return filepath.SkipAll
			}
		}
		return nil
	})
	if !hasProjectFiles {
		return ErrNoProjectFiles
	}
	return nil
}

// scanState accumulates hits across the walked files.
type scanState struct {
	installed   map[string]string // package id -> version, keyed lowercase
	installedID []string          // original casing, insertion order
	featureHits map[string]bool
	patternHits map[string]bool
	domainVotes map[string]int
}

func (s *scanState) readProjectFile(path string) {
	content, err := readCapped(path)
	if err != nil {
		return
	}

	for _, m := range packageReferenceRe.FindAllStringSubmatch(content, -1) {
		s.addPackage(m[1], m[2])
	}
	for _, m := range packagesConfigRe.FindAllStringSubmatch(content, -1) {
		s.addPackage(m[1], m[2])
	}
}

func (s *scanState) addPackage(id, version string) {
	key := strings.ToLower(id)
	if _, seen := s.installed[key]; seen {
		return
	}
	s.installed[key] = version
	s.installedID = append(s.installedID, id)
}

func (s *scanState) readSourceFile(path string) {
	content, err := readCapped(path)
	if err != nil {
		return
	}
	lower := strings.ToLower(content)

	for _, det := range featureDetectors {
		if s.featureHits[det.name] {
			continue
		}
		for _, kw := range det.keywords {
			if strings.Contains(lower, kw) {
				s.featureHits[det.name] = true
				break
			}
		}
	}

	for _, det := range patternDetectors {
		if s.patternHits[det.name] {
			continue
		}
		for _, kw := range det.keywords {
			if strings.Contains(content, kw) {
				s.patternHits[det.name] = true
				break
			}
		}
	}

	for domain, keywords := range domainKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				s.domainVotes[domain]++
			}
		}
	}
}

func (s *scanState) signals(filesRead int) *types.ProjectSignals {
	sig := &types.ProjectSignals{
		InstalledPackages: s.installedID,
	}

	// The core CMS package reference pins the framework and its version.
	for key, version := range s.installed {
		if key == "umbraco.cms" || key == "umbracocms" || strings.HasPrefix(key, "umbraco.cms.") {
			sig.FrameworkID = "umbraco"
			sig.PlatformVersion = majorVersion(version)
			break
		}
	}

	for _, det := range featureDetectors {
		if s.featureHits[det.name] {
			sig.Features = append(sig.Features, det.name)
		}
	}
	for _, det := range patternDetectors {
		if s.patternHits[det.name] {
			sig.ArchitecturePatterns = append(sig.ArchitecturePatterns, det.name)
		}
	}

	sig.BusinessDomain = topDomain(s.domainVotes)
	sig.Narrative = narrative(sig, filesRead)
	return sig
}

// majorVersion reduces "13.2.1" to "13"; empty stays empty.
func majorVersion(version string) string {
	if version == "" {
		return ""
	}
	if i := strings.IndexByte(version, '.'); i > 0 {
		return version[:i]
	}
	return version
}

func topDomain(votes map[string]int) string {
	best := ""
	bestCount := 0
	for _, domain := range domainOrder {
		if votes[domain] > bestCount {
			best = domain
			bestCount = votes[domain]
		}
	}
	return best
}

func narrative(sig *types.ProjectSignals, filesRead int) string {
	var b strings.Builder
	if sig.FrameworkID != "" {
		fmt.Fprintf(&b, "%s project", sig.FrameworkID)
		if sig.PlatformVersion != "" {
			fmt.Fprintf(&b, " on platform version %s", sig.PlatformVersion)
		}
	} else {
		b.WriteString(".NET project")
	}
	fmt.Fprintf(&b, " with %d installed packages", len(sig.InstalledPackages))
	if len(sig.Features) > 0 {
		fmt.Fprintf(&b, "; detected capabilities: %s", strings.Join(sig.Features, ", "))
	}
	if sig.BusinessDomain != "" {
		fmt.Fprintf(&b, "; likely %s domain", sig.BusinessDomain)
	}
	fmt.Fprintf(&b, " (scanned %d files)", filesRead)
	return b.String()
}

func readCapped(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, maxFileBytes)
	n, err := f.Read(buf)
	if n == 0 && err != nil {
		return "", err
	}
	return string(buf[:n]), nil
}
