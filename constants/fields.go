package constants

// Field names for the extracted header FieldSet. Stable values: these exact
// strings are the keys in P_fields.json.
const (
	FieldInvoiceNumber = "invoice_number"
	FieldDate          = "date"
	FieldGSTNumber     = "gst_number"
	FieldPONumber      = "po_number"
	FieldBillTo        = "bill_to"
	FieldShipTo        = "ship_to"
	FieldBillToAddress = "bill_to_address"
	FieldShipToAddress = "ship_to_address"
	FieldSubtotal      = "subtotal"
	FieldGSTAmount     = "gst_amount"
	FieldDiscount      = "discount"
	FieldTotal         = "total"
)

// RegexFields are the header fields extracted by pattern matching, in the
// order they appear in the output.
var RegexFields = []string{
	FieldInvoiceNumber,
	FieldDate,
	FieldGSTNumber,
	FieldPONumber,
}

// AmountFields are the externally supplied monetary fields the verification
// engine coerces to numbers.
var AmountFields = []string{
	FieldSubtotal,
	FieldGSTAmount,
	FieldDiscount,
	FieldTotal,
}
