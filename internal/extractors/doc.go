// Package extractors converts source-item bytes into plain text.
//
// Each file format has its own extractor under a subpackage; the Registry
// selects one by filename extension and absorbs every failure into empty
// text, which the processing controller records as Needs OCR.
package extractors
