package scanner

import "strings"

// clauseEnders are keywords that close a FROM table list at the top level.
// GO is the T-SQL batch separator, which otherwise reads as an alias.
var clauseEnders = map[string]bool{
	"where":     true,
	"set":       true,
	"on":        true,
	"group":     true,
	"order":     true,
	"having":    true,
	"union":     true,
	"intersect": true,
	"except":    true,
	"limit":     true,
	"offset":    true,
	"fetch":     true,
	"for":       true,
	"window":    true,
	"returning": true,
	"output":    true,
	"option":    true,
	"when":      true,
	"using":     true,
	"values":    true,
	"go":        true,
}

// joinWords form or qualify JOIN clauses and never name a table or alias.
var joinWords = map[string]bool{
	"join":    true,
	"inner":   true,
	"left":    true,
	"right":   true,
	"full":    true,
	"cross":   true,
	"outer":   true,
	"natural": true,
}

// fromEntry is one binding introduced by a FROM list item or a JOIN: the
// table as written plus the alias it is reachable by. The alias defaults to
// the table name itself when none is given.
type fromEntry struct {
	table string
	alias string
}

// Extract returns the target tables for a classified statement span,
// deduplicated case-insensitively with the source spelling preserved. An
// empty result means no resolvable target; the statement then never
// matches.
func Extract(typ StatementType, text string, stripQuotes bool) []string {
	toks := tokenize(text, stripQuotes)

	switch typ {
	case StatementInsert:
		return extractInto(toks, "insert")
	case StatementMerge:
		return extractInto(toks, "merge")
	case StatementSelect:
		return tableSet(collectFromChain(toks))
	case StatementDelete:
		return extractDelete(toks)
	case StatementUpdate:
		return extractUpdate(toks)
	}
	return nil
}

// extractInto handles INSERT and MERGE: the identifier after INTO (or after
// the leading keyword itself when INTO is omitted) is the sole target.
func extractInto(toks []token, lead string) []string {
	i := 0
	if i < len(toks) && toks[i].isKeyword(lead) {
		i++
	}
	if i < len(toks) && toks[i].isKeyword("into") {
		i++
	}
	if i < len(toks) && isTableName(toks[i]) {
		return []string{toks[i].text}
	}
	return nil
}

// extractDelete collects the FROM table and every joined table, mirroring
// the SELECT walk. Without a FROM clause the identifier after DELETE is the
// sole candidate.
func extractDelete(toks []token) []string {
	entries := collectFromChain(toks)
	if len(entries) > 0 {
		return tableSet(entries)
	}
	if len(toks) >= 2 && toks[0].isKeyword("delete") && isTableName(toks[1]) {
		return []string{toks[1].text}
	}
	return nil
}

// extractUpdate handles both supported forms. Direct: UPDATE <table> SET
// with no top-level FROM. FROM-clause: the token after UPDATE is resolved
// against the alias bindings of the FROM/JOIN chain; the bound table may be
// introduced by any JOIN, not only the first FROM item. An unresolved alias
// yields no target rather than a guess.
func extractUpdate(toks []token) []string {
	i := 0
	if i < len(toks) && toks[i].isKeyword("update") {
		i++
	}
	if i >= len(toks) || !isTableName(toks[i]) {
		return nil
	}
	target := toks[i]

	entries := collectFromChain(toks)
	if len(entries) == 0 {
		return []string{target.text}
	}
	for _, e := range entries {
		if e.alias == target.lower {
			return []string{e.table}
		}
	}
	return nil
}

// collectFromChain walks the token stream at parenthesis depth zero and
// returns every table introduced by a FROM list item or a JOIN, in source
// order. FROM/JOIN keywords inside sub-selects are out of reach by the
// depth rule.
func collectFromChain(toks []token) []fromEntry {
	var entries []fromEntry
	depth := 0
	inList := false

	i := 0
	for i < len(toks) {
		t := toks[i]
		switch {
		case t.kind == tokenLParen:
			depth++
			i++
		case t.kind == tokenRParen:
			depth--
			i++
		case depth != 0:
			i++
		case t.kind == tokenComma:
			if inList {
				if e, next, ok := readTableItem(toks, i+1); ok {
					entries = append(entries, e)
					i = next
					continue
				}
				inList = false
			}
			i++
		case t.isKeyword("from"):
			if e, next, ok := readTableItem(toks, i+1); ok {
				entries = append(entries, e)
				inList = true
				i = next
				continue
			}
			i++
		case t.isKeyword("join"):
			if e, next, ok := readTableItem(toks, i+1); ok {
				entries = append(entries, e)
				i = next
				continue
			}
			i++
		case t.kind == tokenIdent && !t.quoted && clauseEnders[t.lower]:
			inList = false
			i++
		default:
			i++
		}
	}

	return entries
}

// readTableItem reads `table [AS] [alias]` starting at i. It returns the
// binding and the index of the first unconsumed token.
func readTableItem(toks []token, i int) (fromEntry, int, bool) {
	if i >= len(toks) || !isTableName(toks[i]) {
		return fromEntry{}, i, false
	}
	e := fromEntry{table: toks[i].text, alias: toks[i].lower}
	i++

	if i < len(toks) && toks[i].isKeyword("as") {
		i++
	}
	if i < len(toks) && isTableName(toks[i]) {
		e.alias = toks[i].lower
		i++
	}
	return e, i, true
}

// isTableName reports whether the token can stand as a table or alias:
// an identifier that is not a structural keyword.
func isTableName(t token) bool {
	if t.kind != tokenIdent {
		return false
	}
	if t.quoted {
		return true
	}
	if clauseEnders[t.lower] || joinWords[t.lower] {
		return false
	}
	switch t.lower {
	case "from", "as", "into", "select", "insert", "update", "delete", "merge":
		return false
	}
	return true
}

// tableSet deduplicates entries case-insensitively, first spelling wins.
func tableSet(entries []fromEntry) []string {
	var tables []string
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		key := strings.ToLower(e.table)
		if seen[key] {
			continue
		}
		seen[key] = true
		tables = append(tables, e.table)
	}
	return tables
}
