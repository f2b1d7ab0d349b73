package checkout

import (
	"fmt"
	"net/url"
	"strconv"
)

// UPIURL builds the payment URL a UPI app understands. The rendering layer
// encodes it as a QR code; this package only produces the text.
func UPIURL(upiID string, amount float64) string {
	am := strconv.FormatFloat(amount, 'f', -1, 64)
	return fmt.Sprintf("upi://pay?pa=%s&am=%s&cu=INR", url.QueryEscape(upiID), am)
}
