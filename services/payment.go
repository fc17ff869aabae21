package services

// Invoice parameters. The invoice is always for the fixed item below,
// independent of what the user actually ordered, and successful payment does
// not touch any order row.
const (
	InvoiceTitle       = "Оплата заказа"
	InvoiceDescription = "Оплата заказа через Telegram Payments"
	InvoiceStartParam  = "food-payment"
	InvoiceItem        = "Пицца"
	InvoiceAmount      = 500 // rubles
)

// PrecheckoutErrorText is shown to the user when pre-checkout validation
// rejects the payment.
const PrecheckoutErrorText = "Ошибка оплаты"

// InvoiceAmountMinor returns the invoice amount in kopecks, as Telegram
// Payments expects.
func InvoiceAmountMinor() int {
	return InvoiceAmount * 100
}

// ValidatePrecheckout is the only gate before the provider captures funds:
// the payload must equal the configured token exactly.
func ValidatePrecheckout(payload, expected string) error {
	if payload != expected {
		return ErrPaymentPayloadMismatch
	}
	return nil
}
