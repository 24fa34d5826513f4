package widevine

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"encoding/binary"
	"io"
	"log/slog"
	"time"

	"github.com/barnettlynn/widevine/internal/wvproto"
)

// LicenseType selects the license flavor requested from the server.
type LicenseType uint32

const (
	Streaming LicenseType = LicenseType(wvproto.LicenseTypeStreaming)
	Offline   LicenseType = LicenseType(wvproto.LicenseTypeOffline)
	Automatic LicenseType = LicenseType(wvproto.LicenseTypeAutomatic)
)

// Session is opened from a [Cdm] and configured with an optional privacy
// certificate before being consumed by [Session.GetLicenseRequest].
type Session struct {
	device     *Device
	number     uint64
	serviceCrt *ServiceCertificate
}

// Number returns the session's counter value, as observed by the
// owning Cdm at open time.
func (s *Session) Number() uint64 { return s.number }

// SetServiceCertificate verifies and parses raw bytes and configures the
// session for privacy mode, encrypting the client ID under the parsed
// certificate's public key.
func (s *Session) SetServiceCertificate(raw []byte) error {
	cert, err := ParseServiceCertificate(raw)
	if err != nil {
		return err
	}
	s.serviceCrt = cert
	return nil
}

// SetServiceCertificateParsed configures the session from an
// already-parsed ServiceCertificate, skipping verification. Accepts
// either raw bytes (via [Session.SetServiceCertificate]) or a parsed
// value through this method — the two together model the spec's
// polymorphic certificate-input parameter.
func (s *Session) SetServiceCertificateParsed(cert *ServiceCertificate) {
	s.serviceCrt = cert
}

// SetServiceCertificateCommon configures privacy mode using the built-in
// "license.widevine.com" certificate, without verification.
func (s *Session) SetServiceCertificateCommon() {
	s.serviceCrt = CommonServiceCertificate()
}

// SetServiceCertificateStaging configures privacy mode using the
// built-in "staging.google.com" certificate, without verification.
func (s *Session) SetServiceCertificateStaging() {
	s.serviceCrt = StagingServiceCertificate()
}

// LicenseRequest owns the consumed Session plus the canonical serialized
// (unsigned) license-request bytes. The same serialized bytes are reused
// for both signing ([LicenseRequest.Challenge]) and, later, key
// derivation ([LicenseRequest.GetKeys]).
type LicenseRequest struct {
	session *Session
	raw     []byte
}

// GetLicenseRequest consumes s and builds a LicenseRequest for pssh and
// licenseType. If s has a service certificate configured, the client ID
// is encrypted under it (privacy mode); otherwise it is sent in the
// clear.
func (s *Session) GetLicenseRequest(pssh *Pssh, licenseType LicenseType) (*LicenseRequest, error) {
	requestID, err := buildRequestID(s.device.DeviceType(), s.number)
	if err != nil {
		return nil, err
	}

	req := &wvproto.LicenseRequest{
		ContentId: &wvproto.ContentIdentification{
			WidevinePsshData: &wvproto.CidWidevinePsshData{
				PsshData:    [][]byte{pssh.InitData},
				LicenseType: uint32(licenseType),
				RequestId:   requestID,
			},
		},
		Type:            wvproto.RequestTypeNew,
		RequestTime:     time.Now().Unix(),
		ProtocolVersion: wvproto.ProtocolVersion21,
		KeyControlNonce: mustRandomNonce(),
	}

	if s.serviceCrt != nil {
		enc, err := encryptClientID(s.device.ClientID(), s.serviceCrt)
		if err != nil {
			return nil, err
		}
		req.EncryptedClientId = enc
	} else {
		req.ClientId = s.device.ClientID()
	}

	slog.Debug("widevine: built license request",
		"session_number", s.number,
		"device_type", s.device.DeviceType(),
		"privacy_mode", s.serviceCrt != nil,
		"license_type", licenseType,
	)

	return &LicenseRequest{session: s, raw: req.Marshal()}, nil
}

// buildRequestID constructs the 16-byte request_id. Android devices
// emulate OEMCrypto's CTR-block shape: 4 random bytes, 4 zero bytes (see
// DESIGN.md "Android request-id bytes 4..8" — hardware has also been
// observed emitting 0xFF there), then the session number as a
// little-endian 64-bit integer. Chrome devices use 16 fully random
// bytes.
func buildRequestID(dt DeviceType, sessionNumber uint64) ([]byte, error) {
	id := make([]byte, 16)
	if dt == DeviceTypeAndroid {
		if _, err := io.ReadFull(rand.Reader, id[0:4]); err != nil {
			return nil, rsaErr(err)
		}
		binary.LittleEndian.PutUint64(id[8:16], sessionNumber)
		return id, nil
	}
	if _, err := io.ReadFull(rand.Reader, id); err != nil {
		return nil, rsaErr(err)
	}
	return id, nil
}

// mustRandomNonce draws a uniformly random signed 32-bit integer in
// [1, 2^31).
func mustRandomNonce() int32 {
	var b [4]byte
	for {
		if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
			panic(err)
		}
		v := binary.BigEndian.Uint32(b[:]) & 0x7FFFFFFF
		if v != 0 {
			return int32(v)
		}
	}
}

// encryptClientID implements privacy-mode encrypted client
// identification: a fresh AES key/IV wrap the serialized client ID,
// and the AES key is itself wrapped with RSA-OAEP under the service
// certificate's public key.
func encryptClientID(clientID []byte, cert *ServiceCertificate) (*wvproto.EncryptedClientIdentification, error) {
	key := make([]byte, 16)
	iv := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, rsaErr(err)
	}
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, rsaErr(err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, rsaErr(err)
	}
	padded := pkcs7Pad(clientID, aes.BlockSize)
	encClientID := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(encClientID, padded)

	encKey, err := rsa.EncryptOAEP(sha1.New(), rand.Reader, cert.PublicKey, key, nil)
	if err != nil {
		return nil, rsaErr(err)
	}

	return &wvproto.EncryptedClientIdentification{
		ProviderId:                     cert.ProviderID,
		ServiceCertificateSerialNumber: cert.SerialNumber,
		EncryptedClientId:              encClientID,
		EncryptedClientIdIv:            iv,
		EncryptedPrivacyKey:            encKey,
	}, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - (len(data) % blockSize)
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, invalidLicense("pkcs7 padding: empty input")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > len(data) {
		return nil, invalidLicense("pkcs7 padding: invalid pad length")
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, invalidLicense("pkcs7 padding: inconsistent pad bytes")
		}
	}
	return data[:len(data)-padLen], nil
}
