package widevine

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/binary"
	"io"
	"log/slog"

	"github.com/barnettlynn/widevine/internal/wvproto"
)

// DeviceType distinguishes the request-id layout a device uses.
type DeviceType uint8

const (
	DeviceTypeChrome  DeviceType = 1
	DeviceTypeAndroid DeviceType = 2
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeChrome:
		return "CHROME"
	case DeviceTypeAndroid:
		return "ANDROID"
	default:
		return "UNKNOWN"
	}
}

// SecurityLevel is informational, persisted to the WVD file untouched.
type SecurityLevel uint8

const (
	SecurityLevelL1 SecurityLevel = 1
	SecurityLevelL2 SecurityLevel = 2
	SecurityLevelL3 SecurityLevel = 3
)

func (l SecurityLevel) String() string {
	switch l {
	case SecurityLevelL1:
		return "L1"
	case SecurityLevelL2:
		return "L2"
	case SecurityLevelL3:
		return "L3"
	default:
		return "UNKNOWN"
	}
}

const (
	wvdMagic         = "WVD"
	wvdVersionLatest = 2
)

// Device is an immutable, shareable device credential: device type,
// security level, an RSA private key, and a serialized client identity.
// Construct it with [NewDevice] or [ReadWVD].
type Device struct {
	deviceType    DeviceType
	securityLevel SecurityLevel
	privateKey    *rsa.PrivateKey
	clientID      []byte // raw serialized ClientIdentification bytes, kept as read for byte-exact round-tripping
}

// NewDevice builds a Device from its constituent parts. clientID is the
// already-serialized ClientIdentification message.
func NewDevice(dt DeviceType, level SecurityLevel, priv *rsa.PrivateKey, clientID []byte) (*Device, error) {
	if priv == nil {
		return nil, invalidInput("private key is required")
	}
	if len(clientID) == 0 {
		return nil, invalidInput("client_id is required")
	}
	if _, err := wvproto.UnmarshalClientIdentification(clientID); err != nil {
		return nil, invalidInput("client_id is not a valid ClientIdentification: %v", err)
	}
	return &Device{deviceType: dt, securityLevel: level, privateKey: priv, clientID: clientID}, nil
}

// DeviceType returns the device's type.
func (d *Device) DeviceType() DeviceType { return d.deviceType }

// SecurityLevel returns the device's security level.
func (d *Device) SecurityLevel() SecurityLevel { return d.securityLevel }

// PublicKey returns the device's RSA public key.
func (d *Device) PublicKey() *rsa.PublicKey { return &d.privateKey.PublicKey }

// ClientID returns the raw serialized ClientIdentification bytes.
func (d *Device) ClientID() []byte {
	out := make([]byte, len(d.clientID))
	copy(out, d.clientID)
	return out
}

// ReadWVD parses the binary ".wvd" device-credential format described in
// the WVD file format table. Recognized versions are 1 and 2.
//
// A v1 quirk is tolerated on read only: some v1 writers inserted 5 bytes
// of zero padding between the flags byte and the private-key length. If
// the u16 private-key length reads as zero, the reader skips 5 bytes and
// retries the length read once. Writers never emit this padding.
func ReadWVD(r io.Reader) (*Device, error) {
	hdr := make([]byte, 7)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, ioErr(err)
	}
	if string(hdr[0:3]) != wvdMagic {
		return nil, invalidInput("bad WVD magic %q", hdr[0:3])
	}
	version := hdr[3]
	if version != 1 && version != 2 {
		return nil, invalidInput("unrecognized WVD version %d", version)
	}
	dt := DeviceType(hdr[4])
	if dt != DeviceTypeChrome && dt != DeviceTypeAndroid {
		return nil, invalidInput("unrecognized device_type %d", hdr[4])
	}
	level := SecurityLevel(hdr[5])
	if level != SecurityLevelL1 && level != SecurityLevelL2 && level != SecurityLevelL3 {
		return nil, invalidInput("unrecognized security_level %d", hdr[5])
	}
	if hdr[6] != 0 {
		return nil, invalidInput("non-zero flag padding byte")
	}

	keyLen, err := readU16(r)
	if err != nil {
		return nil, err
	}
	if keyLen == 0 {
		slog.Debug("widevine: WVD v1 zero-padding quirk triggered, skipping 5 bytes")
		skip := make([]byte, 5)
		if _, err := io.ReadFull(r, skip); err != nil {
			return nil, ioErr(err)
		}
		keyLen, err = readU16(r)
		if err != nil {
			return nil, err
		}
		if keyLen == 0 {
			return nil, invalidInput("private key length is zero after padding recovery")
		}
	}

	keyDER := make([]byte, keyLen)
	if _, err := io.ReadFull(r, keyDER); err != nil {
		return nil, ioErr(err)
	}
	priv, err := x509.ParsePKCS1PrivateKey(keyDER)
	if err != nil {
		return nil, invalidInput("private key is not valid PKCS#1 DER: %v", err)
	}

	cidLen, err := readU16(r)
	if err != nil {
		return nil, err
	}
	clientID := make([]byte, cidLen)
	if _, err := io.ReadFull(r, clientID); err != nil {
		return nil, ioErr(err)
	}
	if _, err := wvproto.UnmarshalClientIdentification(clientID); err != nil {
		return nil, invalidInput("client_id is not a valid ClientIdentification: %v", err)
	}

	slog.Debug("widevine: parsed WVD", "device_type", dt, "security_level", level, "version", version)
	return &Device{deviceType: dt, securityLevel: level, privateKey: priv, clientID: clientID}, nil
}

// WriteWVD serializes d in WVD format version 2. write(read(F)) is
// byte-equal to F for every valid F produced by this function.
func (d *Device) WriteWVD(w io.Writer) error {
	keyDER := x509.MarshalPKCS1PrivateKey(d.privateKey)
	if len(keyDER) > 0xFFFF || len(d.clientID) > 0xFFFF {
		return invalidInput("serialized field exceeds u16 length")
	}

	var buf bytes.Buffer
	buf.WriteString(wvdMagic)
	buf.WriteByte(wvdVersionLatest)
	buf.WriteByte(byte(d.deviceType))
	buf.WriteByte(byte(d.securityLevel))
	buf.WriteByte(0) // flag padding

	writeU16(&buf, uint16(len(keyDER)))
	buf.Write(keyDER)

	writeU16(&buf, uint16(len(d.clientID)))
	buf.Write(d.clientID)

	_, err := w.Write(buf.Bytes())
	if err != nil {
		return ioErr(err)
	}
	return nil
}

func readU16(r io.Reader) (uint16, error) {
	b := make([]byte, 2)
	if _, err := io.ReadFull(r, b); err != nil {
		return 0, ioErr(err)
	}
	return binary.BigEndian.Uint16(b), nil
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}
