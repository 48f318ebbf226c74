package textit

// Metadata is the side-channel record carried alongside an extraction
// result (spec.md §3, §7): it is never discarded, even when extraction
// fails, so a driver can always write a JSON record.
type Metadata struct {
	OCR        bool
	Decrypted  bool
	DropReason string

	// OriginalNLines is the paragraph count before the reference scrub
	// ran (spec.md §6's original_nlines, supplemented: the field is
	// named but never defined by the source or spec.md itself).
	OriginalNLines int
}

// Drop reasons recognized by the loader error classification (spec.md
// §6, §7).
const (
	DropReasonUnknownEncryptionPassword = "unknown_encryption_password"
	DropReasonBrokenPDF                 = "broken-pdf"
	DropReasonTextExtractionFailure     = "text-extraction-failure"
)
