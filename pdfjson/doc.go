// Package pdfjson reads the upstream text-extraction contract: a JSON
// document listing, per page, the page dimensions and raw text fragments
// with percent-encoded text runs.
//
// # Input format
//
//	{
//	  "pages": [
//	    {
//	      "width": 38.0, "height": 59.0,
//	      "texts": [
//	        {"x": 2.1, "y": 4.8, "width": 5.2,
//	         "runs": [{"encodedText": "GARAM%20MASALA%201A"}]}
//	      ]
//	    }
//	  ]
//	}
//
// # Normalization
//
// [Normalize] turns a raw page into [model.PageFragments]: each fragment's
// runs are concatenated and percent-decoded (falling back to the raw text
// when decoding fails), fragments whose decoded text is empty or
// whitespace-only are dropped, and the remainder is sorted into reading
// order. Decoded text that is not valid UTF-8 is reinterpreted as
// Windows-1252, which recovers Nordic venue and team names emitted by
// legacy extractors.
//
// Only failure to read or parse the document itself is an error; individual
// malformed fragments degrade to their raw text and never abort a page.
package pdfjson
