// Package content provides best-effort extraction of structured pieces
// (video URL, buy link, lead image) from semi-structured CMS page HTML.
//
// Each extractor runs an ordered chain of matcher strategies and returns the
// first successful match, falling back to a documented default. The matchers
// are regex-based, not an HTML parser: they trade correctness on malformed
// markup for zero dependencies on the upstream's markup discipline.
package content

import "regexp"

// matcher tries one extraction strategy and reports whether it matched.
type matcher func(html string) (string, bool)

var (
	videoTagSrc    = regexp.MustCompile(`(?is)<video[^>]*\ssrc=["']([^"']+)["']`)
	videoSourceSrc = regexp.MustCompile(`(?is)<video[^>]*>.*?<source[^>]*\ssrc=["']([^"']+)["']`)
	mp4Href        = regexp.MustCompile(`(?i)href=["']([^"']+\.mp4)["']`)

	productHref   = regexp.MustCompile(`(?i)href=["']([^"']*/product/[^"']+)["']`)
	addToCartHref = regexp.MustCompile(`(?i)href=["']([^"']*[?&]add-to-cart=\d+[^"']*)["']`)

	imgSrc        = regexp.MustCompile(`(?i)<img[^>]*\ssrc=["']([^"']+)["']`)
	backgroundURL = regexp.MustCompile(`(?i)background-image:\s*url\(['"]?([^'")]+)['"]?\)`)
)

// firstGroup adapts a single-capture regexp into a matcher.
func firstGroup(re *regexp.Regexp) matcher {
	return func(html string) (string, bool) {
		if m := re.FindStringSubmatch(html); m != nil {
			return m[1], true
		}
		return "", false
	}
}

// extract runs the strategies in order and returns the first match, or the
// fallback when none succeed.
func extract(html string, strategies []matcher, fallback string) string {
	for _, try := range strategies {
		if v, ok := try(html); ok {
			return v
		}
	}
	return fallback
}

// VideoURL extracts the first video source URL from page HTML: a src on the
// video tag itself, then a nested source tag, then any link to an .mp4 file.
// Returns "" when no video is found.
func VideoURL(html string) string {
	return extract(html, []matcher{
		firstGroup(videoTagSrc),
		firstGroup(videoSourceSrc),
		firstGroup(mp4Href),
	}, "")
}

// BuyLink extracts the first product purchase link from page HTML: a link
// into the store's /product/ path, then an add-to-cart link. Falls back to
// "/shop" so the storefront always has somewhere to send the visitor.
func BuyLink(html string) string {
	return extract(html, []matcher{
		firstGroup(productHref),
		firstGroup(addToCartHref),
	}, "/shop")
}

// LeadImage extracts the first image URL from page HTML: an img tag, then an
// inline background-image style. Returns "" when no image is found.
func LeadImage(html string) string {
	return extract(html, []matcher{
		firstGroup(imgSrc),
		firstGroup(backgroundURL),
	}, "")
}
