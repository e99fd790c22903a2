// Package papers provides read-only access to the paper documents served by
// the Readable Research API.
//
// A paper is a single JSON value stored in a file named after its identifier:
//
//	<root>/<identifier>.json
//
// The Store never writes. It validates identifiers so that a lookup can only
// ever name a file directly inside the storage root, reads the file, checks
// that it is well-formed JSON and hands the raw value back unchanged.
//
// # Errors
//
// Every failure returned by Store.Get is an *Error wrapping one of the
// sentinel errors below, so callers can branch with errors.Is or KindOf:
//
//	doc, err := store.Get(ctx, "paper1")
//	switch papers.KindOf(err) {
//	case papers.KindNotFound:
//	    // 404
//	case papers.KindInvalidJSON, papers.KindIO:
//	    // 500
//	case papers.KindInvalidIdentifier:
//	    // 400
//	}
package papers
