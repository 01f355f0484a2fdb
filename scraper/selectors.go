package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

const (
	maxBrandNameLen   = 255
	maxDescriptionLen = 1000

	fallbackBrandName   = "Unknown Brand"
	fallbackDescription = "No description available"
)

// extractorFunc pulls one candidate value out of a parsed document.
// It returns "" when its source is absent; trimming is the reducer's job.
type extractorFunc func(doc *goquery.Document) string

// Precompiled selectors. cascadia.Selector implements goquery.Matcher, so
// parse errors surface at init instead of on every request.
var (
	selSiteName        = cascadia.MustCompile(`meta[property="og:site_name"], meta[name="site_name"]`)
	selApplicationName = cascadia.MustCompile(`meta[name="application-name"]`)
	selH1              = cascadia.MustCompile(`h1`)
	selLogo            = cascadia.MustCompile(`.logo, #logo, [class*="logo"], [alt*="logo"]`)
	selDescription     = cascadia.MustCompile(`meta[name="description"]`)
	selOGDescription   = cascadia.MustCompile(`meta[property="og:description"]`)
	selTwDescription   = cascadia.MustCompile(`meta[name="twitter:description"], meta[property="twitter:description"]`)
	selParagraph       = cascadia.MustCompile(`p`)
)

// brandNameExtractors is the ordered chain for brand-name extraction.
// First present, non-empty, trimmed value wins.
var brandNameExtractors = []extractorFunc{
	metaSiteName,
	metaApplicationName,
	titleFirstSegment,
	firstHeading,
	logoText,
}

// descriptionExtractors is the ordered chain for description extraction.
var descriptionExtractors = []extractorFunc{
	metaDescription,
	ogDescription,
	twitterDescription,
	firstParagraph,
}

// ExtractBrandName runs the brand-name chain over the document.
// The result is trimmed and truncated to 255 characters.
func ExtractBrandName(doc *goquery.Document) string {
	name := firstNonEmpty(doc, brandNameExtractors)
	if name == "" {
		name = fallbackBrandName
	}
	return truncate(name, maxBrandNameLen)
}

// ExtractDescription runs the description chain over the document.
// The result is trimmed and truncated to 1000 characters.
func ExtractDescription(doc *goquery.Document) string {
	desc := firstNonEmpty(doc, descriptionExtractors)
	if desc == "" {
		desc = fallbackDescription
	}
	return truncate(desc, maxDescriptionLen)
}

// firstNonEmpty is the chain reducer: it returns the first extractor output
// that is non-empty after trimming, or "".
func firstNonEmpty(doc *goquery.Document, chain []extractorFunc) string {
	for _, extract := range chain {
		if v := strings.TrimSpace(extract(doc)); v != "" {
			return v
		}
	}
	return ""
}

func metaContent(doc *goquery.Document, sel cascadia.Selector) string {
	content, _ := doc.FindMatcher(sel).First().Attr("content")
	return content
}

func metaSiteName(doc *goquery.Document) string {
	return metaContent(doc, selSiteName)
}

func metaApplicationName(doc *goquery.Document) string {
	return metaContent(doc, selApplicationName)
}

// titleFirstSegment takes the first segment of the page title, split on the
// common "Brand - Tagline" and "Brand | Tagline" separators.
func titleFirstSegment(doc *goquery.Document) string {
	title := doc.Find("title").First().Text()
	for _, sep := range []string{" - ", " | "} {
		if idx := strings.Index(title, sep); idx >= 0 {
			title = title[:idx]
		}
	}
	return title
}

func firstHeading(doc *goquery.Document) string {
	return doc.FindMatcher(selH1).First().Text()
}

func logoText(doc *goquery.Document) string {
	logo := doc.FindMatcher(selLogo).First()
	if text := strings.TrimSpace(logo.Text()); text != "" {
		return text
	}
	// An <img class="logo"> has no text content; its alt attribute often
	// carries the brand name.
	alt, _ := logo.Attr("alt")
	return alt
}

func metaDescription(doc *goquery.Document) string {
	return metaContent(doc, selDescription)
}

func ogDescription(doc *goquery.Document) string {
	return metaContent(doc, selOGDescription)
}

func twitterDescription(doc *goquery.Document) string {
	return metaContent(doc, selTwDescription)
}

func firstParagraph(doc *goquery.Document) string {
	return doc.FindMatcher(selParagraph).First().Text()
}

// truncate caps s at max characters (runes, not bytes).
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
