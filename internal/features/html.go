package features

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/happyhackingspace/maxent/sparse"
)

// addHTML adds visible-text terms, element counts and form structure.
func (e *Extractor) addHTML(v sparse.Vector[string], html string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("features: parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	e.addTerms(v, prefixHTML, e.terms(NormalizeSpace(doc.Text())))

	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		v.Add(prefixTag+goquery.NodeName(s), 1)
	})

	doc.Find("form").Each(func(_ int, form *goquery.Selection) {
		method, _ := form.Attr("method")
		method = strings.ToLower(strings.TrimSpace(method))
		if method == "" {
			method = "missing"
		}
		v.Add(prefixMethod+method, 1)

		for tp, n := range inputTypeCounts(form) {
			v.Add(prefixInput+tp, float64(n))
		}
	})
	return nil
}

// inputTypeCounts counts form controls by type; untyped inputs count as text.
func inputTypeCounts(form *goquery.Selection) map[string]int {
	counts := make(map[string]int)
	form.Find("input, textarea, select").Each(func(_ int, s *goquery.Selection) {
		switch tag := goquery.NodeName(s); tag {
		case "textarea", "select":
			counts[tag]++
		default:
			tp, ok := s.Attr("type")
			if !ok || tp == "" {
				tp = "text"
			}
			counts[strings.ToLower(tp)]++
		}
	})
	return counts
}
