package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/ezkey-wallet/internal/model"
)

// ErrInvalidPassword is returned when the GCM tag does not verify
var ErrInvalidPassword = errors.New("invalid password")

// DecryptWallet reads and decrypts .cwt file
// password must be []byte for security (caller should zero it after use)
func DecryptWallet(filePath string, password []byte) (*model.CWTFile, *model.WalletData, error) {
	cwtFile, err := readCWTFile(filePath)
	if err != nil {
		return nil, nil, err
	}

	var salt, nonce, ciphertext []byte
	for _, field := range []struct {
		name string
		in   string
		out  *[]byte
	}{
		{"salt", cwtFile.Salt, &salt},
		{"nonce", cwtFile.Nonce, &nonce},
		{"ciphertext", cwtFile.CipherText, &ciphertext},
	} {
		if *field.out, err = base64.StdEncoding.DecodeString(field.in); err != nil {
			return nil, nil, fmt.Errorf("failed to decode %s: %w", field.name, err)
		}
	}
	if len(nonce) != nonceLen {
		return nil, nil, fmt.Errorf("invalid nonce length %d", len(nonce))
	}

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return nil, nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, nil, ErrInvalidPassword
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var walletData model.WalletData
	if err := json.Unmarshal(plaintext, &walletData); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal wallet data: %w", err)
	}

	return cwtFile, &walletData, nil
}

// ReadWalletAddress reads the public address of a keystore without the password
func ReadWalletAddress(filePath string) (string, error) {
	cwtFile, err := readCWTFile(filePath)
	if err != nil {
		return "", err
	}
	return cwtFile.Address, nil
}

func readCWTFile(filePath string) (*model.CWTFile, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("keystore %s does not exist", filePath)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if fileInfo.Size() == 0 {
		return nil, fmt.Errorf("keystore %s is empty", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	fileData = bytes.TrimPrefix(fileData, utf8BOM)

	var cwtFile model.CWTFile
	if err := json.Unmarshal(fileData, &cwtFile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cwt file: %w", err)
	}

	return &cwtFile, nil
}
