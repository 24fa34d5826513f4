package widevine

import "encoding/hex"

// KeyType classifies a decrypted [Key].
type KeyType uint32

const (
	KeyTypeSigning         KeyType = KeyType(1)
	KeyTypeContent         KeyType = KeyType(2)
	KeyTypeKeyControl      KeyType = KeyType(3)
	KeyTypeOperatorSession KeyType = KeyType(4)
	KeyTypeEntitlement     KeyType = KeyType(5)
	KeyTypeOemContent      KeyType = KeyType(6)
)

func (t KeyType) String() string {
	switch t {
	case KeyTypeSigning:
		return "SIGNING"
	case KeyTypeContent:
		return "CONTENT"
	case KeyTypeKeyControl:
		return "KEY_CONTROL"
	case KeyTypeOperatorSession:
		return "OPERATOR_SESSION"
	case KeyTypeEntitlement:
		return "ENTITLEMENT"
	case KeyTypeOemContent:
		return "OEM_CONTENT"
	default:
		return "UNKNOWN"
	}
}

// Key is a single decrypted key recovered from a license response.
type Key struct {
	Type  KeyType
	KID   [16]byte
	Bytes []byte
}

// KeySet holds the keys recovered from a license response, in the order
// the server sent them. Immutable once returned by [LicenseRequest.GetKeys].
type KeySet struct {
	keys []Key
}

// OfType returns every key of the given type, in response order.
func (s *KeySet) OfType(t KeyType) []Key {
	var out []Key
	for _, k := range s.keys {
		if k.Type == t {
			out = append(out, k)
		}
	}
	return out
}

// FirstOfType returns the first key of type t.
func (s *KeySet) FirstOfType(t KeyType) (*Key, error) {
	for i := range s.keys {
		if s.keys[i].Type == t {
			return &s.keys[i], nil
		}
	}
	return nil, invalidLicense("did not receive %s key", t)
}

// ContentKey returns the CONTENT key whose id equals kid byte-for-byte.
func (s *KeySet) ContentKey(kid [16]byte) (*Key, error) {
	for i := range s.keys {
		if s.keys[i].Type == KeyTypeContent && s.keys[i].KID == kid {
			return &s.keys[i], nil
		}
	}
	return nil, invalidLicense("no content key for kid %s", hex.EncodeToString(kid[:]))
}

// All returns every recovered key, in response order.
func (s *KeySet) All() []Key {
	out := make([]Key, len(s.keys))
	copy(out, s.keys)
	return out
}
