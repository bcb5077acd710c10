package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	cryptoDomain "github.com/prepdeck/contentguard/internal/crypto/domain"
	cryptoService "github.com/prepdeck/contentguard/internal/crypto/service"
)

// RunCreateMasterKey generates a 32-byte master key for envelope encryption
// and prints the environment variables to configure it.
//
// With kmsKeyURI set, the key is encrypted through the KMS keeper before
// output, so plaintext key material never reaches the environment. Without
// it, the key is emitted as plain base64, which is only acceptable for local
// development. If keyID is empty, a default in the format
// "master-key-YYYY-MM-DD" is used.
func RunCreateMasterKey(keyID, kmsKeyURI string, writer io.Writer) error {
	ctx := context.Background()

	if keyID == "" {
		keyID = fmt.Sprintf("master-key-%s", time.Now().Format("2006-01-02"))
	}

	masterKey := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}
	defer cryptoDomain.Zero(masterKey)

	payload := masterKey

	if kmsKeyURI != "" {
		keeperInterface, err := cryptoService.NewKMSService().OpenKeeper(ctx, kmsKeyURI)
		if err != nil {
			return fmt.Errorf("failed to open KMS keeper: %w", err)
		}
		defer func() {
			if closeErr := keeperInterface.Close(); closeErr != nil {
				_, _ = fmt.Fprintf(writer, "# Warning: failed to close KMS keeper: %v\n", closeErr)
			}
		}()

		keeper, ok := keeperInterface.(interface {
			Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
		})
		if !ok {
			return fmt.Errorf("KMS keeper does not support encryption")
		}

		ciphertext, err := keeper.Encrypt(ctx, masterKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt master key with KMS: %w", err)
		}
		payload = ciphertext

		_, _ = fmt.Fprintln(writer, "# Master Key Configuration (KMS mode)")
		_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	} else {
		_, _ = fmt.Fprintln(writer, "# Master Key Configuration (plaintext mode, local development only)")
	}

	encodedKey := base64.StdEncoding.EncodeToString(payload)

	_, _ = fmt.Fprintf(writer, "MASTER_KEYS=\"%s:%s\"\n", keyID, encodedKey)
	_, _ = fmt.Fprintf(writer, "ACTIVE_MASTER_KEY_ID=\"%s\"\n", keyID)
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintln(writer, "# For key rotation, append the new key and move ACTIVE_MASTER_KEY_ID:")
	_, _ = fmt.Fprintf(writer, "# MASTER_KEYS=\"%s:%s,next-key:<base64>\"\n", keyID, encodedKey)
	_, _ = fmt.Fprintln(writer, "# ACTIVE_MASTER_KEY_ID=\"next-key\"")

	return nil
}
