package domain

import "errors"

var (
	ErrEmptyInvoice        = errors.New("empty_invoice")
	ErrInvalidNumericField = errors.New("invalid_numeric_field")
	ErrInvalidMode         = errors.New("invalid_mode")
	ErrNumericOutOfRange   = errors.New("numeric_out_of_range")
)

// EmptyInvoiceMessage is shown to the user instead of a document when no items were added.
const EmptyInvoiceMessage = "Please add items to the invoice."
