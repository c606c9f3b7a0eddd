package scraper

import (
	"regexp"
)

// FilterByKeyword returns the URLs containing keyword, ignoring case, in input
// order. The input slice is not modified.
func FilterByKeyword(urls []string, keyword string) []string {
	if keyword == "" {
		return nil
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(keyword))

	var matches []string
	for _, u := range urls {
		if re.MatchString(u) {
			matches = append(matches, u)
		}
	}
	return matches
}

// Filter runs FilterByKeyword and logs each match.
func (s *Scraper) Filter(urls []string, keyword string) []string {
	matches := FilterByKeyword(urls, keyword)
	for _, u := range matches {
		s.logger.Info("recipe matches keyword", "keyword", keyword, "url", u)
	}
	s.logger.Info("keyword filter done", "keyword", keyword, "scanned", len(urls), "matches", len(matches))
	return matches
}
