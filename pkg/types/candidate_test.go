package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCandidate() *Candidate {
	return NewCandidate(PackageRecord{
		ID:     "Umbraco.Forms",
		Source: SourceNuGet,
	}, 0.5, "general package")
}

func TestCandidateValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validCandidate().Validate())
	})

	t.Run("missing id", func(t *testing.T) {
		c := validCandidate()
		c.ID = ""
		assert.ErrorIs(t, c.Validate(), ErrMissingPackageID)
	})

	t.Run("unknown source", func(t *testing.T) {
		c := validCandidate()
		c.Source = SourceKind("github")
		assert.ErrorIs(t, c.Validate(), ErrUnknownSource)
	})

	t.Run("relevance out of range", func(t *testing.T) {
		c := validCandidate()
		c.RelevanceScore = 1.2
		assert.ErrorIs(t, c.Validate(), ErrInvalidRelevanceScore)

		c.RelevanceScore = -0.1
		assert.ErrorIs(t, c.Validate(), ErrInvalidRelevanceScore)
	})

	t.Run("community out of range", func(t *testing.T) {
		c := validCandidate()
		c.CommunityScore = 1.2
		assert.ErrorIs(t, c.Validate(), ErrInvalidCommunityScore)
	})
}

func TestHasPackage(t *testing.T) {
	sig := &ProjectSignals{InstalledPackages: []string{"Umbraco.Cms", "uSync"}}

	assert.True(t, sig.HasPackage("Umbraco.Cms"))
	assert.True(t, sig.HasPackage("usync"), "membership check ignores case")
	assert.True(t, sig.HasPackage("UMBRACO.CMS"))
	assert.False(t, sig.HasPackage("Umbraco.Forms"))
	assert.False(t, sig.HasPackage(""))
}

func TestSearchText(t *testing.T) {
	rec := PackageRecord{
		Tags:        []string{"CMS", "SEO"},
		Description: "Sitemap Generator",
	}
	assert.Equal(t, "cms seo sitemap generator", rec.SearchText())

	empty := PackageRecord{}
	assert.Equal(t, "", empty.SearchText())
}
