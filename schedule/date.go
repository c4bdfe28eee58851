package schedule

import (
	"regexp"

	"github.com/tlindfors/fieldsched/model"
)

// dateRe matches D.M.YYYY and DD.MM.YYYY document dates.
var dateRe = regexp.MustCompile(`\b\d{1,2}\.\d{1,2}\.\d{4}\b`)

// FindDocumentDate scans fragments in order for the first date-like text
// and returns it. Absence is not an error; the caller leaves the document
// date unset. Run once per document, on the first page.
func FindDocumentDate(fragments []model.TextFragment) (string, bool) {
	for _, f := range fragments {
		if m := dateRe.FindString(f.Text); m != "" {
			return m, true
		}
	}
	return "", false
}
