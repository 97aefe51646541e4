package yahoo

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// yieldPattern matches the percentage inside "1.94 (2.83%)" or a bare
// "2.83%" cell.
var yieldPattern = regexp.MustCompile(`\(?(\d+(?:\.\d+)?)%\)?`)

// GetDividendYield scrapes the trailing dividend yield from the quote
// page summary table and returns it as a fraction (0.025 for 2.5%).
// A symbol that pays no dividend returns 0 without error.
func (c *Client) GetDividendYield(ctx context.Context, symbol string) (float64, error) {
	url := fmt.Sprintf("%s/quote/%s", c.quoteBaseURL, symbol)

	resp, err := c.fetch(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("quote page request for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("parse quote page for %s: %w", symbol, err)
	}

	y, err := parseDividendYield(doc)
	if err != nil {
		return 0, fmt.Errorf("dividend yield for %s: %w", symbol, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"yield":  y,
	}).Debug("Yield fetched")

	return y, nil
}

// parseDividendYield walks the summary table rows looking for the
// dividend & yield cell. Yahoo has shipped several layouts; check the
// stable data-test attribute first, then fall back to label matching.
func parseDividendYield(doc *goquery.Document) (float64, error) {
	if sel := doc.Find(`[data-test="DIVIDEND_AND_YIELD-value"]`).First(); sel.Length() > 0 {
		return yieldFromText(sel.Text())
	}

	var text string
	doc.Find("li, tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		label := strings.ToLower(row.Find("span, td").First().Text())
		if strings.Contains(label, "dividend") && strings.Contains(label, "yield") {
			text = row.Find("span, td").Last().Text()
			return false
		}
		return true
	})

	if text == "" {
		return 0, fmt.Errorf("dividend row not found")
	}
	return yieldFromText(text)
}

// yieldFromText converts "1.94 (2.83%)" style text to a fraction.
// "N/A" and "--" mean the symbol pays no dividend.
func yieldFromText(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, "N/A") || strings.HasPrefix(text, "--") {
		return 0, nil
	}

	m := yieldPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("unrecognized yield text %q", text)
	}

	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("parse yield %q: %w", text, err)
	}

	return pct / 100, nil
}
