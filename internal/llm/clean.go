package llm

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// MaxContentLen caps how much page text goes into a prompt.
const MaxContentLen = 20000

// CleanContent reduces HTML to text blocks worth showing a model. Links are
// kept inline as "text (href)" so the model can return them. Plain text input
// is only whitespace-normalized.
func CleanContent(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return capRunes(collapse(html), MaxContentLen)
	}

	doc.Find("script, style, nav, header, footer, iframe, noscript, svg").Remove()
	doc.Find(".menu, .navigation, .social, .banner, .ads, .cookie, .popup").Remove()

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		text := collapse(a.Text())
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		a.SetText(text + " (" + href + ")")
	})

	var blocks []string
	doc.Find("p, li, h1, h2, h3, h4, h5, h6, a, td").Each(func(_ int, s *goquery.Selection) {
		// nested matches are covered by their parent block
		if s.ParentsFiltered("p, li, h1, h2, h3, h4, h5, h6, a, td").Length() > 0 {
			return
		}
		if text := collapse(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})

	text := strings.Join(blocks, "\n")
	if text == "" {
		text = collapse(doc.Find("body").Text())
	}
	if text == "" {
		text = collapse(doc.Text())
	}
	return capRunes(text, MaxContentLen)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func capRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
