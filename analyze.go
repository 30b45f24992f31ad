package csskit

import (
	"sort"
	"strings"
)

// Analysis is the aggregate stylesheet report. Slice and map fields are
// always non-nil so the JSON form carries every key.
type Analysis struct {
	Selectors          []string                     `json:"selectors"`
	SelectorsCount     int                          `json:"selectors_count"`
	UniqueSelectors    int                          `json:"unique_selectors"`
	PropertiesCount    int                          `json:"properties_count"`
	UniqueProperties   int                          `json:"unique_properties"`
	MostUsedProperties []PropertyCount              `json:"most_used_properties"`
	ColorsUsed         int                          `json:"colors_used"`
	Colors             []string                     `json:"colors"`
	FontsUsed          int                          `json:"fonts_used"`
	Fonts              []string                     `json:"fonts"`
	MediaQueriesCount  int                          `json:"media_queries_count"`
	MediaQueries       []string                     `json:"media_queries"`
	MediaQueryDetails  map[string]*MediaQueryDetail `json:"media_query_details"`
	CommentsCount      int                          `json:"comments_count"`
	Comments           []string                     `json:"comments"`
	FileSizeBytes      int                          `json:"file_size_bytes"`
	SelectorProperties map[string]map[string]string `json:"selector_properties"`
	Imports            []string                     `json:"imports"`
	ImportsCount       int                          `json:"imports_count"`
	ImportMediaQueries map[string]string            `json:"import_media_queries"`
	SelectorCategories map[string]int               `json:"selector_categories"`
}

// PropertyCount is one entry of the most-used-properties ranking.
type PropertyCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MediaQueryDetail aggregates what lives under one media condition:
// selectors in appearance order and per-property declaration counts.
type MediaQueryDetail struct {
	Selectors  []string       `json:"selectors"`
	Properties map[string]int `json:"properties"`
}

// Analyze builds the aggregate report with the default extractor tables.
func Analyze(css string) (*Analysis, error) {
	return defaultExtractor.Analyze(css)
}

// Analyze builds an Analysis of the stylesheet: selector and property
// counts, a most-used-property ranking, color and font inventories, media
// query breakdowns, comments, imports and a selector category histogram.
// Keyframe steps do not count as selectors. The color and font capture here
// is looser than the dedicated extractors: any value containing "#" counts
// as a color.
func (e *Extractor) Analyze(css string) (*Analysis, error) {
	sheet, err := Parse(css)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		Selectors:          []string{},
		MostUsedProperties: []PropertyCount{},
		Colors:             []string{},
		Fonts:              []string{},
		MediaQueries:       []string{},
		MediaQueryDetails:  make(map[string]*MediaQueryDetail),
		Comments:           []string{},
		FileSizeBytes:      len(css),
		SelectorProperties: make(map[string]map[string]string),
		Imports:            []string{},
		ImportMediaQueries: make(map[string]string),
	}

	propCounts := make(map[string]int)
	var propOrder []string
	selectorSeen := make(map[string]bool)
	colorSeen := make(map[string]bool)
	fontSeen := make(map[string]bool)

	Walk(sheet.Items, Visitor{
		Enter: func(at *AtRule, _ *Context) {
			if at.Keyword != "media" {
				return
			}
			a.MediaQueries = append(a.MediaQueries, at.Prelude)
			if a.MediaQueryDetails[at.Prelude] == nil {
				a.MediaQueryDetails[at.Prelude] = &MediaQueryDetail{
					Selectors:  []string{},
					Properties: make(map[string]int),
				}
			}
		},
		Rule: func(r *QualifiedRule, ctx *Context) {
			if ctx.IsKeyframes() {
				return
			}
			a.Selectors = append(a.Selectors, r.Selector)
			selectorSeen[r.Selector] = true

			props := a.SelectorProperties[r.Selector]
			if props == nil {
				props = make(map[string]string)
				a.SelectorProperties[r.Selector] = props
			}

			var detail *MediaQueryDetail
			if ctx.IsMedia() {
				detail = a.MediaQueryDetails[ctx.Prelude]
				detail.Selectors = append(detail.Selectors, r.Selector)
			}

			for _, d := range declarations(r.Declarations) {
				a.PropertiesCount++
				if propCounts[d.Name] == 0 {
					propOrder = append(propOrder, d.Name)
				}
				propCounts[d.Name]++
				props[d.Name] = d.Value
				if detail != nil {
					detail.Properties[d.Name]++
				}

				switch {
				case d.Name == "color" || d.Name == "background-color" ||
					d.Name == "border-color" || strings.Contains(d.Value, "#"):
					if !colorSeen[d.Value] {
						colorSeen[d.Value] = true
						a.Colors = append(a.Colors, d.Value)
					}
				case d.Name == "font-family" || d.Name == "font":
					if !fontSeen[d.Value] {
						fontSeen[d.Value] = true
						a.Fonts = append(a.Fonts, d.Value)
					}
				}
			}
		},
		AtRule: func(at *AtRule, _ *Context) {
			if at.Keyword != "import" {
				return
			}
			url, media, ok := parseImportPrelude(at.Prelude)
			if !ok {
				return
			}
			a.Imports = append(a.Imports, url)
			if media != "" {
				a.ImportMediaQueries[url] = media
			}
		},
	})

	a.SelectorsCount = len(a.Selectors)
	a.UniqueSelectors = len(selectorSeen)
	a.UniqueProperties = len(propCounts)
	a.MostUsedProperties = rankProperties(propOrder, propCounts, 10)
	a.ColorsUsed = len(a.Colors)
	a.FontsUsed = len(a.Fonts)
	a.MediaQueriesCount = len(a.MediaQueries)
	a.Comments = collectComments(sheet.Items)
	a.CommentsCount = len(a.Comments)
	a.ImportsCount = len(a.Imports)
	a.SelectorCategories = CategorizeSelectors(a.Selectors)

	return a, nil
}

// Validate checks css for structural errors: the brace pre-check plus a
// full parse. It returns nil when the sheet is well formed.
func Validate(css string) error {
	_, err := Parse(css)
	return err
}

// rankProperties sorts properties by descending count, first appearance
// breaking ties, and keeps the top n.
func rankProperties(order []string, counts map[string]int, n int) []PropertyCount {
	ranked := make([]PropertyCount, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, PropertyCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// collectComments gathers comment text from the whole sheet in source
// order: top level, rule bodies, and every at-rule block, recursed or not.
func collectComments(items []Item) []string {
	out := []string{}
	var visit func(items []Item)
	visit = func(items []Item) {
		for _, it := range items {
			switch n := it.(type) {
			case *Comment:
				out = append(out, n.Text)
			case *QualifiedRule:
				for _, c := range comments(n.Declarations) {
					out = append(out, c.Text)
				}
			case *AtRule:
				for _, c := range comments(n.Declarations) {
					out = append(out, c.Text)
				}
				visit(n.Block)
			}
		}
	}
	visit(items)
	return out
}

// parseImportPrelude splits an @import prelude into its target and optional
// media query. The target is either url(...) with inner quotes stripped or
// a bare quoted string; everything after it is the media query.
func parseImportPrelude(prelude string) (url, media string, ok bool) {
	s := strings.TrimSpace(prelude)
	switch {
	case strings.HasPrefix(s, "url("):
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return "", "", false
		}
		url = unquote(strings.TrimSpace(s[len("url("):end]))
		media = strings.TrimSpace(s[end+1:])
	case strings.HasPrefix(s, `"`) || strings.HasPrefix(s, "'"):
		quote := s[0]
		rest := s[1:]
		end := strings.IndexByte(rest, quote)
		if end < 0 {
			return "", "", false
		}
		url = rest[:end]
		media = strings.TrimSpace(rest[end+1:])
	default:
		return "", "", false
	}
	return url, media, true
}
