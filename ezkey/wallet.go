package ezkey

import (
	"crypto/ecdsa"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AlexZinkM/ezkey-wallet/internal/crypto"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/skip2/go-qrcode"
)

const (
	networkPolygon = "polygon"
)

// FileExistsError is an error when file already exists and is not empty
type FileExistsError struct {
	Message string
}

func (e *FileExistsError) Error() string {
	return e.Message
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	_, ok := err.(*FileExistsError)
	return ok
}

// GenerateWallet generates a new secp256k1 key and saves it to a .cwt file.
// Returns the checksummed address and the base64 QR code of it.
// password must be []byte for security (caller should zero it after use)
func GenerateWallet(filePath string, password []byte) (*model.GenerateResponse, error) {
	if filepath.Ext(filePath) != crypto.WalletExt {
		return nil, fmt.Errorf("file must have .cwt extension")
	}

	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return nil, &FileExistsError{Message: "file is not empty"}
	}

	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	privateKey := ethcrypto.FromECDSA(key)
	defer clear(privateKey)

	address := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()

	qrCode, err := generateQRCode(address)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	walletData := &model.WalletData{
		PrivateKey: privateKey,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	if err := crypto.EncryptWallet(filePath, networkPolygon, address, qrCode, walletData, password); err != nil {
		return nil, fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	return &model.GenerateResponse{
		Success: true,
		Message: "wallet created",
		Address: address,
		QR:      qrCode,
	}, nil
}

// LoadKey decrypts the keystore and returns the signing key.
// The key is checked against the address stored next to the ciphertext.
func LoadKey(filePath string, password []byte) (*ecdsa.PrivateKey, error) {
	cwtFile, walletData, err := crypto.DecryptWallet(filePath, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt wallet: %w", err)
	}
	defer clear(walletData.PrivateKey)

	if len(walletData.PrivateKey) != 32 {
		return nil, fmt.Errorf("invalid private key length")
	}

	key, err := ethcrypto.ToECDSA(walletData.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	if !strings.EqualFold(ethcrypto.PubkeyToAddress(key.PublicKey).Hex(), cwtFile.Address) {
		return nil, fmt.Errorf("private key does not match address")
	}
	return key, nil
}

// Rekey re-encrypts the keystore under a new password
func Rekey(filePath string, oldPassword, newPassword []byte) error {
	if len(newPassword) == 0 {
		return fmt.Errorf("new password cannot be empty")
	}
	if err := crypto.ReencryptWallet(filePath, oldPassword, newPassword); err != nil {
		return fmt.Errorf("failed to re-encrypt wallet: %w", err)
	}
	return nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
