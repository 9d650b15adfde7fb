package types

// DocumentKind distinguishes the two generated document families. The kind
// selects the serial prefix and the S3 bucket prefix.
type DocumentKind string

const (
	DocumentKindStatement DocumentKind = "statement"
	DocumentKindInvoice   DocumentKind = "invoice"
)

// SerialPrefix returns the human-readable serial prefix for the kind.
func (k DocumentKind) SerialPrefix() string {
	switch k {
	case DocumentKindInvoice:
		return "INV"
	default:
		return "pcIST"
	}
}

func (k DocumentKind) Validate() bool {
	return k == DocumentKindStatement || k == DocumentKindInvoice
}
