package widevine

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"

	"github.com/barnettlynn/widevine/internal/wvproto"
)

// WidevineSystemID is the Widevine DRM system UUID used in PSSH boxes.
var WidevineSystemID = [16]byte{
	0xed, 0xef, 0x8b, 0xa9, 0x79, 0xd6, 0x4a, 0xce,
	0xa3, 0xc8, 0x27, 0xdc, 0xd5, 0x1d, 0x21, 0xed,
}

// Pssh is the content-side protection header: the bytes that become the
// license request's pssh_data entry, and the key ids the header carries
// (if any).
type Pssh struct {
	InitData []byte
	KeyIDs   [][]byte
}

// PsshFromB64 decodes base64 and delegates to [PsshFromBytes].
func PsshFromB64(s string) (*Pssh, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, invalidInput("pssh is not valid base64: %v", err)
	}
	return PsshFromBytes(raw)
}

// PsshFromBytes parses raw PSSH bytes. It first attempts an MP4 PSSH box
// parse; on failure it falls back to treating the input as a bare
// Widevine PsshData protobuf, requiring that re-serializing the parsed
// message reproduces the input exactly (a round-trip guard against
// inputs that merely happen to decode).
func PsshFromBytes(raw []byte) (*Pssh, error) {
	if p, err := parsePsshBox(raw); err == nil {
		return p, nil
	}
	return parseBarePssh(raw)
}

func parsePsshBox(raw []byte) (*Pssh, error) {
	if len(raw) < 32 {
		return nil, invalidInput("pssh box too short")
	}
	size := binary.BigEndian.Uint32(raw[0:4])
	if uint64(size) != uint64(len(raw)) {
		return nil, invalidInput("pssh box size field does not match input length")
	}
	if string(raw[4:8]) != "pssh" {
		return nil, invalidInput("not a pssh box")
	}
	versionFlags := binary.BigEndian.Uint32(raw[8:12])
	version := byte(versionFlags >> 24)
	if version > 1 {
		return nil, invalidInput("unsupported pssh box version %d", version)
	}
	if !bytes.Equal(raw[12:28], WidevineSystemID[:]) {
		return nil, invalidInput("pssh system_id is not Widevine")
	}

	off := 28
	var keyIDs [][]byte
	if version == 1 {
		if len(raw) < off+4 {
			return nil, invalidInput("pssh box truncated before kid_count")
		}
		kidCount := binary.BigEndian.Uint32(raw[off : off+4])
		off += 4
		for i := uint32(0); i < kidCount; i++ {
			if len(raw) < off+16 {
				return nil, invalidInput("pssh box truncated in kid list")
			}
			kid := make([]byte, 16)
			copy(kid, raw[off:off+16])
			keyIDs = append(keyIDs, kid)
			off += 16
		}
	}

	if len(raw) < off+4 {
		return nil, invalidInput("pssh box truncated before data_len")
	}
	dataLen := binary.BigEndian.Uint32(raw[off : off+4])
	off += 4
	if uint64(off)+uint64(dataLen) != uint64(len(raw)) {
		return nil, invalidInput("pssh box data_len does not match remaining length")
	}
	initData := make([]byte, dataLen)
	copy(initData, raw[off:])

	return &Pssh{InitData: initData, KeyIDs: keyIDs}, nil
}

func parseBarePssh(raw []byte) (*Pssh, error) {
	pd, err := wvproto.UnmarshalPsshData(raw)
	if err != nil {
		return nil, protobufErr(err)
	}
	canonical := pd.Marshal()
	if !bytes.Equal(canonical, raw) {
		return nil, invalidInput("bare pssh protobuf does not round-trip to the original bytes")
	}
	for _, kid := range pd.KeyIds {
		if len(kid) != 16 {
			return nil, invalidInput("pssh key_id is not 16 bytes")
		}
	}
	return &Pssh{InitData: canonical, KeyIDs: pd.KeyIds}, nil
}
