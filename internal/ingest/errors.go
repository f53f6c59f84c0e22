package ingest

import "errors"

var (
	// ErrUnsupportedFileType is returned for uploads whose extension is not
	// one of .txt, .md, .pdf or .docx.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrEmptyDocument is returned when extraction yields no usable text;
	// there is nothing to index.
	ErrEmptyDocument = errors.New("document contains no extractable text")
)
