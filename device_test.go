package widevine

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/barnettlynn/widevine/internal/wvproto"
)

func testClientID(t *testing.T) []byte {
	t.Helper()
	cid := &wvproto.ClientIdentification{
		Type:    1,
		HasType: true,
		Token:   []byte{1, 2, 3, 4},
		ClientInfo: []wvproto.NameValue{
			{Name: "company_name", Value: "widevine"},
			{Name: "model_name", Value: "test-device"},
		},
	}
	return cid.Marshal()
}

func testDevice(t *testing.T) *Device {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	dev, err := NewDevice(DeviceTypeAndroid, SecurityLevelL3, priv, testClientID(t))
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	return dev
}

func TestWVDRoundTrip(t *testing.T) {
	dev := testDevice(t)

	var buf bytes.Buffer
	if err := dev.WriteWVD(&buf); err != nil {
		t.Fatalf("WriteWVD: %v", err)
	}
	original := append([]byte(nil), buf.Bytes()...)

	got, err := ReadWVD(bytes.NewReader(original))
	if err != nil {
		t.Fatalf("ReadWVD: %v", err)
	}
	if got.DeviceType() != dev.DeviceType() || got.SecurityLevel() != dev.SecurityLevel() {
		t.Fatalf("device_type/security_level not preserved")
	}
	if !bytes.Equal(got.ClientID(), dev.ClientID()) {
		t.Fatalf("client_id not preserved")
	}

	var buf2 bytes.Buffer
	if err := got.WriteWVD(&buf2); err != nil {
		t.Fatalf("re-WriteWVD: %v", err)
	}
	if !bytes.Equal(buf2.Bytes(), original) {
		t.Fatalf("write(read(F)) != F")
	}
}

func TestReadWVDRejectsBadMagic(t *testing.T) {
	bad := []byte("XXD\x02\x01\x01\x00\x00\x00\x00\x00")
	if _, err := ReadWVD(bytes.NewReader(bad)); !IsInvalidInput(err) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestReadWVDRejectsNonZeroFlagPadding(t *testing.T) {
	bad := []byte("WVD\x02\x01\x01\x01\x00\x00\x00\x00")
	if _, err := ReadWVD(bytes.NewReader(bad)); !IsInvalidInput(err) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestReadWVDShortReadIsIoError(t *testing.T) {
	bad := []byte("WVD\x02")
	if _, err := ReadWVD(bytes.NewReader(bad)); !ClassifyIsIo(err) {
		t.Fatalf("expected Io error, got %v", err)
	}
}

func ClassifyIsIo(err error) bool {
	k, ok := ClassifyError(err)
	return ok && k == KindIo
}

func TestReadWVDZeroPaddingRecovery(t *testing.T) {
	dev := testDevice(t)

	var clean bytes.Buffer
	if err := dev.WriteWVD(&clean); err != nil {
		t.Fatalf("WriteWVD: %v", err)
	}
	b := clean.Bytes()

	// Reconstruct the v1-with-padding variant by hand: header (7 bytes),
	// then 2 zero length bytes, then 5 padding bytes, then the real
	// length+key+client_id tail from the clean encoding.
	var padded bytes.Buffer
	padded.Write(b[0:3])        // magic
	padded.WriteByte(1)         // version = 1 for this variant
	padded.Write(b[4:7])        // device_type, security_level, flag
	padded.Write([]byte{0, 0})  // private key length reads as 0
	padded.Write(make([]byte, 5))
	padded.Write(b[7:]) // real length+key+client_id, unchanged from the clean encoding

	got, err := ReadWVD(bytes.NewReader(padded.Bytes()))
	if err != nil {
		t.Fatalf("ReadWVD with padding quirk: %v", err)
	}
	if !bytes.Equal(got.ClientID(), dev.ClientID()) {
		t.Fatalf("client_id not recovered through padding quirk")
	}
}

func TestMetadataProjection(t *testing.T) {
	dev := testDevice(t)
	md, err := dev.Metadata()
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if md.ClientInfo["company_name"] != "widevine" {
		t.Fatalf("client_info not projected: %+v", md.ClientInfo)
	}
	if md.DeviceType != DeviceTypeAndroid || md.SecurityLevel != SecurityLevelL3 {
		t.Fatalf("device_type/security_level not projected")
	}
}
