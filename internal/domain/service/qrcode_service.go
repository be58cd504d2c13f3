package service

import "github.com/google/uuid"

// QRCodeService defines the interface for generating and parsing receipt QR
// codes.
type QRCodeService interface {
	// GenerateReceiptQR renders a PNG QR code embedding the purchase ID
	// and receipt number.
	GenerateReceiptQR(purchaseID uuid.UUID, receiptNumber string) ([]byte, error)

	// ParseReceiptQR decodes previously generated QR payload data and
	// returns the purchase ID it references.
	ParseReceiptQR(qrData string) (uuid.UUID, error)
}
