package widevine

import (
	"bytes"
	"testing"

	"github.com/barnettlynn/widevine/internal/wvproto"
)

func TestPsshFromB64Box(t *testing.T) {
	const b64 = "AAAAW3Bzc2gAAAAA7e+LqXnWSs6jyCfc1R0h7QAAADsIARIQ62dqu8s0Xpa7z2FmMPGj2hoNd2lkZXZpbmVfdGVzdCIQZmtqM2xqYVNkZmFsa3IzaioCSEQyAA=="

	pssh, err := PsshFromB64(b64)
	if err != nil {
		t.Fatalf("PsshFromB64: %v", err)
	}
	want := []byte{
		0x08, 0x01, 0x12, 0x10, 0xeb, 0x67, 0x6a, 0xbb, 0xcb, 0x34, 0x5e, 0x96,
		0xbb, 0xcf, 0x61, 0x66, 0x30, 0xf1, 0xa3, 0xda, 0x1a, 0x0d, 0x77, 0x69,
		0x64, 0x65, 0x76, 0x69, 0x6e, 0x65, 0x5f, 0x74, 0x65, 0x73, 0x74, 0x22,
		0x10, 0x66, 0x6b, 0x6a, 0x33, 0x6c, 0x6a, 0x61, 0x53, 0x64, 0x66, 0x61,
		0x6c, 0x6b, 0x72, 0x33, 0x6a, 0x2a, 0x02, 0x48, 0x44, 0x32, 0x00,
	}
	if !bytes.Equal(pssh.InitData, want) {
		t.Fatalf("init_data = %x, want %x", pssh.InitData, want)
	}
	if len(pssh.KeyIDs) != 0 {
		t.Fatalf("expected empty key_ids, got %d", len(pssh.KeyIDs))
	}
}

func TestPsshFromBytesBareProtobufRoundTrip(t *testing.T) {
	pd := &wvproto.PsshData{
		KeyIds:      [][]byte{bytes.Repeat([]byte{0xAA}, 16)},
		Provider:    "widevine_test",
		HasProvider: true,
	}
	raw := pd.Marshal()

	pssh, err := PsshFromBytes(raw)
	if err != nil {
		t.Fatalf("PsshFromBytes: %v", err)
	}
	if !bytes.Equal(pssh.InitData, raw) {
		t.Fatalf("init_data != input bytes for bare protobuf")
	}
	if len(pssh.KeyIDs) != 1 {
		t.Fatalf("key_ids not lifted from protobuf")
	}
}

func TestPsshFromBytesRejectsWrongSystemID(t *testing.T) {
	box := make([]byte, 32)
	copy(box[4:8], "pssh")
	// version+flags left at zero, system_id left at zero (not Widevine's UUID)
	putU32BE(box[0:4], uint32(len(box)))
	putU32BE(box[28:32], 0)

	if _, err := PsshFromBytes(box); err == nil {
		t.Fatalf("expected an error for wrong system_id and non-protobuf fallback")
	}
}

func putU32BE(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}
