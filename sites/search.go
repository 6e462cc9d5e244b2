package sites

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ProductURL scans a search-results page for the first product link whose
// text mentions the company (case-insensitive) and resolves its href
// against the platform base URL. The second return is false when no link
// matches.
func (e *Extractor) ProductURL(markup, company, baseURL string) (string, bool) {
	if e.profile.productLink == nil {
		return "", false
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", false
	}

	needle := strings.ToLower(strings.TrimSpace(company))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", false
	}

	var found string
	doc.FindMatcher(e.profile.productLink).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(s.Text()), needle) {
			return true
		}
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return true
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return true
		}
		found = resolved.String()
		return false
	})
	return found, found != ""
}

// HasNextPage reports whether a listing page advertises an enabled
// next-page control. The profile cue already excludes disabled controls.
func (e *Extractor) HasNextPage(markup string) bool {
	if e.profile.nextPage == nil {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return false
	}
	return doc.FindMatcher(e.profile.nextPage).Length() > 0
}
