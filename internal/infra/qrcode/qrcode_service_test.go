package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateReceiptQR(t *testing.T) {
	service := NewQRCodeService(256, "M")
	purchaseID := uuid.New()

	qrBytes, err := service.GenerateReceiptQR(purchaseID, "R-20250101-ABCDEF12")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_GenerateReceiptQR_DifferentSizes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"Small QR", 128},
		{"Medium QR", 256},
		{"Large QR", 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, "M")
			purchaseID := uuid.New()

			qrBytes, err := service.GenerateReceiptQR(purchaseID, "R-20250101-ABCDEF12")
			require.NoError(t, err)
			assert.NotEmpty(t, qrBytes)
		})
	}
}

func TestQRCodeService_ParseReceiptQR(t *testing.T) {
	service := NewQRCodeService(256, "M")
	purchaseID := uuid.New()

	// Create valid QR data
	data := QRCodeData{
		PurchaseID:    purchaseID.String(),
		ReceiptNumber: "R-20250101-ABCDEF12",
		Type:          "receipt",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	// Parse the QR data
	parsedID, err := service.ParseReceiptQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, purchaseID, parsedID)
}

func TestQRCodeService_ParseReceiptQR_InvalidJSON(t *testing.T) {
	service := NewQRCodeService(256, "M")

	_, err := service.ParseReceiptQR("invalid json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal QR code data")
}

func TestQRCodeService_ParseReceiptQR_InvalidType(t *testing.T) {
	service := NewQRCodeService(256, "M")

	// Create QR data with invalid type
	data := QRCodeData{
		PurchaseID:    uuid.New().String(),
		ReceiptNumber: "R-20250101-ABCDEF12",
		Type:          "invalid_type",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	_, err = service.ParseReceiptQR(string(jsonData))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid QR code type")
}

func TestQRCodeService_ParseReceiptQR_InvalidUUID(t *testing.T) {
	service := NewQRCodeService(256, "M")

	// Create QR data with invalid UUID
	data := QRCodeData{
		PurchaseID:    "not-a-valid-uuid",
		ReceiptNumber: "R-20250101-ABCDEF12",
		Type:          "receipt",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	_, err = service.ParseReceiptQR(string(jsonData))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse purchase ID")
}

func TestQRCodeService_RoundTrip(t *testing.T) {
	service := NewQRCodeService(256, "M")
	originalPurchaseID := uuid.New()

	// Generate QR code
	qrBytes, err := service.GenerateReceiptQR(originalPurchaseID, "R-20250101-ABCDEF12")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Note: We can't directly parse the PNG bytes back to JSON
	// In real usage, the QR code would be scanned by a device
	// and the JSON string would be extracted
	// For testing, we verify the data structure manually
	data := QRCodeData{
		PurchaseID:    originalPurchaseID.String(),
		ReceiptNumber: "R-20250101-ABCDEF12",
		Type:          "receipt",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	parsedID, err := service.ParseReceiptQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, originalPurchaseID, parsedID)
}
