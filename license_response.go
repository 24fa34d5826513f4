package widevine

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"log/slog"

	"github.com/aead/cmac"

	"github.com/barnettlynn/widevine/internal/wvproto"
)

// Challenge signs r's canonical serialized bytes and wraps them in a
// SignedMessage of type LICENSE_REQUEST, ready to be sent to a license
// server. Challenge does not consume r; calling it again yields a
// different signature (PSS uses a fresh random salt each time).
func (r *LicenseRequest) Challenge() ([]byte, error) {
	digest := sha1.Sum(r.raw)
	sig, err := rsa.SignPSS(rand.Reader, r.session.device.privateKey, crypto.SHA1, digest[:], &rsa.PSSOptions{
		SaltLength: sha1.Size,
		Hash:       crypto.SHA1,
	})
	if err != nil {
		return nil, rsaErr(err)
	}

	signed := &wvproto.SignedMessage{
		Type:      wvproto.MsgTypeLicenseRequest,
		Msg:       r.raw,
		Signature: sig,
	}
	return signed.Marshal(), nil
}

// derivedKeys holds the session-scoped AES encryption key and the
// server's HMAC key, both derived from the session seed per §4.6.1.
type derivedKeys struct {
	encKey       [16]byte
	macKeyServer [32]byte
}

// deriveKeys implements the AES-CMAC-based key derivation: two literal
// ASCII contexts, each closed with the canonical license-request bytes
// and a big-endian bit-length suffix, fed through CMAC(seed, counter ||
// context).
func deriveKeys(seed, licenseRequestBytes []byte) (*derivedKeys, error) {
	encContext := buildContext("ENCRYPTION", licenseRequestBytes, 128)
	macContext := buildContext("AUTHENTICATION", licenseRequestBytes, 512)

	encKey, err := cmacDerive(seed, 0x01, encContext)
	if err != nil {
		return nil, err
	}
	macPart1, err := cmacDerive(seed, 0x01, macContext)
	if err != nil {
		return nil, err
	}
	macPart2, err := cmacDerive(seed, 0x02, macContext)
	if err != nil {
		return nil, err
	}

	dk := &derivedKeys{}
	copy(dk.encKey[:], encKey)
	copy(dk.macKeyServer[0:16], macPart1)
	copy(dk.macKeyServer[16:32], macPart2)
	return dk, nil
}

func buildContext(label string, licenseRequestBytes []byte, bitLen uint32) []byte {
	ctx := make([]byte, 0, len(label)+1+len(licenseRequestBytes)+4)
	ctx = append(ctx, label...)
	ctx = append(ctx, 0x00)
	ctx = append(ctx, licenseRequestBytes...)
	var suffix [4]byte
	binary.BigEndian.PutUint32(suffix[:], bitLen)
	return append(ctx, suffix[:]...)
}

func cmacDerive(key []byte, counter byte, context []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, rsaErr(err)
	}
	msg := make([]byte, 0, 1+len(context))
	msg = append(msg, counter)
	msg = append(msg, context...)
	tag, err := cmac.Sum(msg, block, 16)
	if err != nil {
		return nil, rsaErr(err)
	}
	return tag, nil
}

// GetKeys consumes the server's SignedMessage response and recovers the
// content/signing/... keys it carries, verifying the license's integrity
// along the way.
func (r *LicenseRequest) GetKeys(response []byte) (*KeySet, error) {
	signed, err := wvproto.UnmarshalSignedMessage(response)
	if err != nil {
		return nil, protobufErr(err)
	}
	if signed.Type != wvproto.MsgTypeLicense {
		return nil, invalidLicense("expecting LICENSE, got message type %d", signed.Type)
	}

	license, err := wvproto.UnmarshalLicense(signed.Msg)
	if err != nil {
		return nil, protobufErr(err)
	}

	sessionSeed, err := rsa.DecryptOAEP(sha1.New(), rand.Reader, r.session.device.privateKey, signed.SessionKey, nil)
	if err != nil {
		return nil, rsaErr(err)
	}
	if len(sessionSeed) != 16 {
		return nil, invalidLicense("session key decrypted to %d bytes, want 16", len(sessionSeed))
	}

	keys, err := deriveKeys(sessionSeed, r.raw)
	if err != nil {
		return nil, err
	}

	mac := hmac.New(sha256.New, keys.macKeyServer[:])
	mac.Write(signed.OemCryptoCoreMessage)
	mac.Write(signed.Msg)
	computed := mac.Sum(nil)
	if subtle.ConstantTimeCompare(computed, signed.Signature) != 1 {
		return nil, invalidLicense("Signature Mismatch: license HMAC does not match")
	}

	slog.Debug("widevine: license verified", "session_number", r.session.number, "key_count", len(license.Key))

	var set KeySet
	for _, kc := range license.Key {
		key, err := unwrapKeyContainer(keys.encKey[:], kc)
		if err != nil {
			slog.Warn("widevine: dropping unusable key container", "type", kc.Type, "err", err)
			continue
		}
		set.keys = append(set.keys, *key)
	}
	return &set, nil
}

func unwrapKeyContainer(encKey []byte, kc wvproto.KeyContainer) (*Key, error) {
	if len(kc.Iv) != 16 {
		return nil, invalidLicense("key container iv is %d bytes, want 16", len(kc.Iv))
	}
	if len(kc.Id) > 16 {
		return nil, invalidLicense("key container id is %d bytes, want at most 16", len(kc.Id))
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, rsaErr(err)
	}
	if len(kc.Key)%16 != 0 || len(kc.Key) == 0 {
		return nil, invalidLicense("key container ciphertext is not block aligned")
	}
	padded := make([]byte, len(kc.Key))
	cipher.NewCBCDecrypter(block, kc.Iv).CryptBlocks(padded, kc.Key)
	plain, err := pkcs7Unpad(padded)
	if err != nil {
		return nil, err
	}

	var kid [16]byte
	copy(kid[:], kc.Id) // right-zero-padded if shorter than 16

	return &Key{Type: KeyType(kc.Type), KID: kid, Bytes: plain}, nil
}
