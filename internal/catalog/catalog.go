package catalog

// Entry is a single canned answer keyed by a lowercase topic keyword.
type Entry struct {
	Keyword string
	Text    string
}

// Catalog is an ordered, read-only set of canned answers.
// Order matters: the responder resolves ambiguous queries to the earliest entry.
type Catalog struct {
	entries []Entry
}

// New builds a catalog from the given entries, preserving their order.
func New(entries ...Entry) *Catalog {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Catalog{entries: cp}
}

// Entries returns a copy of the catalog entries in registration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Default returns the transcript-based catalog for Bajaj Finserv's FY25 earnings calls.
func Default() *Catalog {
	return New(
		Entry{
			Keyword: "revenue",
			Text:    "Based on Bajaj Finserv's Q2 FY25 earnings call, consolidated revenue grew 30% for the quarter, reaching ₹33,703 crores. For the half year, revenue growth was 32% Y-o-Y. Bajaj Finance (BFL) subsidiary showed total income up 24% with 29% growth in AUM. The strong revenue performance was driven by growth across all business segments including insurance and lending.",
		},
		Entry{
			Keyword: "roe",
			Text:    "From Q2 FY25 results: Bajaj Finance achieved ROE of 19.08% (annualized) with ROTA of 4.48%. Bajaj Housing Finance delivered ROE of 13.03% with ROTA of 2.5%. BAGIC's ROE was around 12.3% in Q4 FY25. The stock broking business achieved ROE of 12.03%, showing strong profitability across all subsidiaries.",
		},
		Entry{
			Keyword: "aum",
			Text:    "Based on Q2 FY25 earnings: Bajaj Finance AUM grew 29% year-over-year. Bajaj Housing Finance AUM stood at ₹1,02,569 crores with 26% growth. Bajaj Allianz Life Insurance AUM reached ₹1,23,178 crores, up 25%. The asset management business AUM was close to ₹16,000 crores, demonstrating strong asset growth across the ecosystem.",
		},
		Entry{
			Keyword: "bagic",
			Text:    "BAGIC's Q2 FY25 performance: Despite headline GWP being down 20% due to government health business spillover, underlying growth was significantly above market at 11% (excluding crop and government health). Combined ratio was 101.4%, affected by NATCAT claims. Excluding these, combined ratio would have been 99.7%. Solvency margin strong at 312% vs regulatory norm of 150%.",
		},
		Entry{
			Keyword: "balic",
			Text:    "BALIC delivered market-beating growth in Q2 FY25: Individual rated new business grew 34% Y-o-Y. Market share increased to almost 9% of private sector vs 8% in Q2 FY24. BALIC ranked 6th among private players and 3rd on Retail NOPs. New Business Value grew 3% despite margin pressures from increased ULIP sales. Gross written premium was higher by 23% Y-o-Y.",
		},
		Entry{
			Keyword: "housing",
			Text:    "Bajaj Housing Finance Q2 FY25 results: AUM growth of 26% reaching ₹1,02,569 crores. Net total income grew 18% with profit after tax of ₹546 crores, up 21%. Credit performance exceptional with just 12 basis points net NPA and 29 basis points gross NPA. ROTA of 2.5% is satisfactory for low-risk, low-margin business with ROE of 13.03%.",
		},
		Entry{
			Keyword: "npa",
			Text:    "Asset quality remains excellent across subsidiaries: Bajaj Finance gross NPA at 1.06% and net NPA at 0.46% - among the best in industry. Bajaj Housing Finance has exceptional credit performance with gross NPA of just 29 basis points and net NPA of 12 basis points. Strong underwriting standards maintained across all lending businesses.",
		},
		Entry{
			Keyword: "health",
			Text:    "Bajaj Finserv Health Q2 FY25 update: Post-acquisition of Vidal Health, integration work commenced. Consolidated revenue for the quarter was ₹233 crores. As a pure healthtech start-up, this revenue level is encouraging. The integration of Vidal provides significant runway for growth. Profit after tax was negative ₹32 crores, well within planned expectations.",
		},
		Entry{
			Keyword: "broking",
			Text:    "Stock broking business (under Bajaj Finance) delivered exceptional Q2 FY25 performance: 78% growth in revenue from operations at ₹121 crores. Profit after tax surged 185% to ₹37 crores. AUM at ₹5,430 crores represents margin trade finance AUM. ROE of 12.03% achieved - this emerging business has reached comfortable profitability levels.",
		},
		Entry{
			Keyword: "allianz",
			Text:    "Regarding Allianz exit (Q2 FY25 call): Management disclosed that Allianz intimated they are considering exit from insurance joint ventures. No significant additional information available at that stage. Bajaj will continue to be dominant shareholder with 74% equity stake. Two solid insurance businesses built over several years will continue under Bajaj's leadership.",
		},
	)
}
