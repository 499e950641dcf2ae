package types

import "strings"

// ProjectSignals captures what the analyzer learned about a local CMS
// project. The scoring pipeline reads FrameworkID, PlatformVersion,
// InstalledPackages and Features; the remaining free-text fields are passed
// through opaquely as language-model prompt context and never parsed.
type ProjectSignals struct {
	FrameworkID     string `json:"frameworkId,omitempty"`
	PlatformVersion string `json:"platformVersion,omitempty"`

	// InstalledPackages holds package ids already referenced by the
	// project. Membership checks are case-insensitive.
	InstalledPackages []string `json:"installedPackages,omitempty"`

	// Features are detected capability keywords ("seo", "forms", ...) in
	// detector order.
	Features []string `json:"detectedFeatures,omitempty"`

	ArchitecturePatterns []string `json:"architecturePatterns,omitempty"`
	BusinessDomain       string   `json:"businessDomain,omitempty"`
	Narrative            string   `json:"narrative,omitempty"`
}

// HasPackage reports whether id is already installed, ignoring case.
func (s *ProjectSignals) HasPackage(id string) bool {
	for _, installed := range s.InstalledPackages {
		if strings.EqualFold(installed, id) {
			return true
		}
	}
	return false
}
