package jobsearch

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	LocationFallback = "Not specified"
	SalaryFallback   = "Not disclosed"
)

var printer = message.NewPrinter(language.English)

// FormatLocation returns "city, country", the country alone, or LocationFallback.
func FormatLocation(city, country string) string {
	city, country = strings.TrimSpace(city), strings.TrimSpace(country)
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case country != "":
		return country
	default:
		return LocationFallback
	}
}

// FormatSalary renders "$80,000 - 120,000" when both bounds are known.
func FormatSalary(currency string, lo, hi *float64) string {
	if lo == nil || hi == nil || *lo <= 0 || *hi <= 0 {
		return SalaryFallback
	}
	if currency = strings.TrimSpace(currency); currency == "" {
		currency = "$"
	}
	return currency + printer.Sprintf("%v - %v",
		number.Decimal(*lo, number.MaxFractionDigits(2)),
		number.Decimal(*hi, number.MaxFractionDigits(2)))
}

var blockElements = map[string]bool{
	"p": true, "br": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true, "tr": true,
}

// PlainText strips markup from an HTML fragment, keeping one line per block
// element. Plain text input passes through with its lines trimmed.
func PlainText(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))

	var b strings.Builder
	skip := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return collapseLines(b.String())
		case html.TextToken:
			if skip == 0 {
				b.Write(tokenizer.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				skip++
			}
			if blockElements[tag] {
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
			if blockElements[tag] {
				b.WriteByte('\n')
			}
		}
	}
}

func collapseLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
