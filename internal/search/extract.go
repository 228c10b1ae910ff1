package search

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/hireloop/scout/internal/browser"
	"github.com/hireloop/scout/internal/logging"
)

// Evaluator is the single primitive the extraction adapter consumes.
type Evaluator interface {
	Evaluate(ctx context.Context, script string) browser.EvalResult
}

// extractScriptTmpl walks the result cards in-page and returns
// lightweight {name, headline, url} entries. Name and headline are
// recovered from the card's text lines the same way the listing
// renders them: the name precedes the "View ... profile" label, the
// headline is the first substantive line after the connection badge.
const extractScriptTmpl = `(() => {
  const cards = Array.from(document.querySelectorAll(%q)).slice(0, 30);
  return cards.map(li => {
    const link = li.querySelector(%q);
    const lines = li.textContent.split('\n').map(l => l.trim()).filter(l => l && l !== 'Status is offline');
    let name = null;
    for (const line of lines) {
      if (line.includes('View ') && line.includes('profile') && !line.includes('degree')) {
        const i = line.indexOf('View ');
        if (i > 0) {
          const before = line.substring(0, i).trim();
          if (before.length > 2 && before.length < 50) { name = before; break; }
        }
      }
    }
    let headline = null;
    let afterConnection = false;
    for (const line of lines) {
      if (line.includes('degree connection')) { afterConnection = true; continue; }
      if (afterConnection && line.length > 5 && !line.includes('degree') && !line.includes('View ') && !line.includes('Status is')) {
        headline = line;
        break;
      }
    }
    return { name: name, headline: headline, url: link ? link.href : null };
  });
})()`

// Extractor pulls candidate records out of the current results page.
type Extractor struct {
	page      Evaluator
	sel       Selectors
	sanitizer *bluemonday.Policy
	log       *logging.Logger
}

// NewExtractor creates an extraction adapter over one page.
func NewExtractor(page Evaluator, sel Selectors, log *logging.Logger) *Extractor {
	if log == nil {
		log = logging.NewNop()
	}
	return &Extractor{
		page:      page,
		sel:       sel,
		sanitizer: bluemonday.StrictPolicy(),
		log:       log,
	}
}

// cleanText strips any markup that leaked into a text field. The page
// is untrusted input and the strings end up persisted, so nothing
// tag-shaped survives.
func (e *Extractor) cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(e.sanitizer.Sanitize(s)))
}

// FromPage runs the injected extraction script and normalizes its
// output. Defensive by contract: a non-list result, a thrown
// exception, and an evaluation failure all come back as an empty
// slice, never an error.
func (e *Extractor) FromPage(ctx context.Context) []Candidate {
	res := e.page.Evaluate(ctx, e.script())
	if res.Kind == browser.Primitive {
		if list, ok := res.Value.([]any); ok {
			return e.normalize(list)
		}
		e.log.Debug("extraction script returned non-list")
	}
	// Script output unusable; parse the raw document instead.
	return e.fromHTML(ctx)
}

func (e *Extractor) script() string {
	return fmt.Sprintf(extractScriptTmpl, e.sel.ResultCards, e.sel.ProfileLink)
}

func (e *Extractor) normalize(raw []any) []Candidate {
	out := make([]Candidate, 0, len(raw))
	for _, entry := range raw {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		c := Candidate{
			Name:       e.cleanText(stringField(fields, "name")),
			Headline:   e.cleanText(stringField(fields, "headline")),
			ProfileURL: stringField(fields, "url"),
		}
		if c.Name == "" && c.ProfileURL == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// fromHTML is the server-side fallback: fetch the document markup and
// walk the result cards with goquery. Used when the injected script
// cannot deliver a usable list.
func (e *Extractor) fromHTML(ctx context.Context) []Candidate {
	res := e.page.Evaluate(ctx, "document.documentElement.outerHTML")
	if res.Kind != browser.Primitive {
		return nil
	}
	html, ok := res.Value.(string)
	if !ok || html == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		e.log.Debug("fallback parse failed", zap.Error(err))
		return nil
	}

	var out []Candidate
	doc.Find(e.sel.ResultCards).Each(func(_ int, card *goquery.Selection) {
		link := card.Find(e.sel.ProfileLink).First()
		href, _ := link.Attr("href")
		c := Candidate{
			Name:       e.cleanText(link.Text()),
			Headline:   e.cleanText(card.Find(e.sel.HeadlineText).First().Text()),
			ProfileURL: href,
		}
		if c.Name == "" && c.ProfileURL == "" {
			return
		}
		out = append(out, c)
	})
	return out
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
