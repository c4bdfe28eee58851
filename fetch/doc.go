// Package fetch discovers and downloads match-programme PDFs from a
// club's schedule web page.
//
// Clubs rarely publish a stable PDF URL; the programme link moves as new
// revisions are uploaded. [PDFLinks] scans a page's HTML for anchors
// pointing at PDF files and [FindProgramme] picks the most likely
// programme among them, so callers can re-fetch the current revision from
// a fixed page URL:
//
//	links, err := fetch.PDFLinks(body, pageURL)
//	link, ok := fetch.FindProgramme(links)
//	data, err := fetch.Download(ctx, nil, link.URL)
//
// The package is used by the CLI's -url mode and is never imported by the
// extraction core.
package fetch
