package domain

import (
	"regexp"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"second category", "second-category"},
		{"test product", "test-product"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Men's T-Shirt (Black)", "men-s-t-shirt-black"},
		{"Crème Brûlée", "creme-brulee"},
		{"a -- b __ c", "a-b-c"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			require.Equal(t, tc.want, Slugify(tc.title))
		})
	}
}

func TestSlugifyTruncatesToMaxLength(t *testing.T) {
	title := strings.Repeat("word ", 30)

	slug := Slugify(title)

	require.LessOrEqual(t, len(slug), MaxSlugLength)
	require.False(t, strings.HasSuffix(slug, "-"))
}

func TestValidSlug(t *testing.T) {
	require.True(t, ValidSlug("second-category"))
	require.True(t, ValidSlug("Under_score-1"))
	require.False(t, ValidSlug(""))
	require.False(t, ValidSlug("has space"))
	require.False(t, ValidSlug("slash/y"))
	require.False(t, ValidSlug(strings.Repeat("a", MaxSlugLength+1)))
}

func TestProperty_SlugifyProducesURLSafeSlugs(t *testing.T) {
	properties := gopter.NewProperties(nil)
	shape := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	properties.Property("derived slugs contain only lowercase alphanumerics separated by single hyphens", prop.ForAll(
		func(title string) bool {
			slug := Slugify(title)
			if slug == "" {
				return true
			}
			return shape.MatchString(slug) && len(slug) <= MaxSlugLength
		},
		gen.AnyString(),
	))

	properties.Property("slugify is idempotent", prop.ForAll(
		func(title string) bool {
			slug := Slugify(title)
			return Slugify(slug) == slug
		},
		gen.AnyString(),
	))

	properties.Property("derived slugs are accepted as supplied slugs", prop.ForAll(
		func(title string) bool {
			return ValidSlug(Slugify(title))
		},
		gen.RegexMatch(`[A-Za-z0-9][A-Za-z0-9 .,!?-]{0,60}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
