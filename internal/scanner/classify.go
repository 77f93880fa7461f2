package scanner

// keywordTypes maps a leading keyword to its statement type.
var keywordTypes = map[string]StatementType{
	"select": StatementSelect,
	"insert": StatementInsert,
	"update": StatementUpdate,
	"delete": StatementDelete,
	"merge":  StatementMerge,
}

// Classify inspects the first non-whitespace, non-comment token of a span
// and maps it to a statement type. Spans that do not begin with a recognized
// DML keyword (BEGIN, DDL, comment-only blocks) report ok=false and are
// excluded from results.
func Classify(text string) (StatementType, bool) {
	l := newLexer(text, true)
	tok, ok := l.nextToken()
	if !ok || tok.kind != tokenIdent || tok.quoted {
		return "", false
	}
	typ, ok := keywordTypes[tok.lower]
	return typ, ok
}
