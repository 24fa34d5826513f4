package widevine

import "testing"

func TestKeySetQueries(t *testing.T) {
	var kid [16]byte
	copy(kid[:], []byte{0xCC, 0xBF})

	set := &KeySet{keys: []Key{
		{Type: KeyTypeSigning, Bytes: []byte{1, 2, 3}},
		{Type: KeyTypeContent, KID: kid, Bytes: []byte{4, 5, 6}},
	}}

	if len(set.OfType(KeyTypeContent)) != 1 {
		t.Fatalf("OfType(CONTENT) returned %d keys, want 1", len(set.OfType(KeyTypeContent)))
	}

	signing, err := set.FirstOfType(KeyTypeSigning)
	if err != nil {
		t.Fatalf("FirstOfType(SIGNING): %v", err)
	}
	if signing.Bytes[0] != 1 {
		t.Fatalf("wrong signing key returned")
	}

	if _, err := set.FirstOfType(KeyTypeOperatorSession); !IsInvalidLicense(err) {
		t.Fatalf("expected InvalidLicense for missing key type, got %v", err)
	}

	ck, err := set.ContentKey(kid)
	if err != nil {
		t.Fatalf("ContentKey: %v", err)
	}
	if ck.Bytes[0] != 4 {
		t.Fatalf("wrong content key returned")
	}

	var missing [16]byte
	missing[0] = 0xFF
	if _, err := set.ContentKey(missing); !IsInvalidLicense(err) {
		t.Fatalf("expected InvalidLicense for unknown kid, got %v", err)
	}
}
