package catalog

import (
	"fmt"
	"strings"
)

const defaultTemplate = "Based on Bajaj Finance's FY25 earnings transcripts, there is no prepared answer for \"%s\". " +
	"I can help you with information about financial performance, business segments, subsidiaries, and strategic initiatives. " +
	"The company delivered strong results across all quarters with consistent performance in revenue, profitability, and asset quality. " +
	"Please ask about specific metrics like ROE, AUM, revenue, or subsidiaries like BAGIC and Housing Finance."

// Match is the outcome of a fallback lookup.
// Keyword is empty when no entry matched and Text holds the default paragraph.
type Match struct {
	Keyword string
	Text    string
}

// Responder answers queries from a catalog without any model involved.
type Responder struct {
	catalog *Catalog
}

// NewResponder creates a responder over the given catalog.
func NewResponder(c *Catalog) *Responder {
	return &Responder{catalog: c}
}

// Respond returns the text of the first entry whose keyword occurs in the
// lowercased query, or the default paragraph echoing the query.
func (r *Responder) Respond(query string) string {
	return r.Lookup(query).Text
}

// Lookup is Respond with the matched keyword exposed.
func (r *Responder) Lookup(query string) Match {
	normalized := strings.ToLower(query)
	for _, e := range r.catalog.entries {
		if strings.Contains(normalized, e.Keyword) {
			return Match{Keyword: e.Keyword, Text: e.Text}
		}
	}
	return Match{Text: DefaultResponse(query)}
}

// DefaultResponse builds the generic paragraph used when nothing in the catalog matches.
func DefaultResponse(query string) string {
	return fmt.Sprintf(defaultTemplate, query)
}
