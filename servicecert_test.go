package widevine

import (
	"encoding/base64"
	"testing"
)

const commonPrivacyCertB64 = "CAUSxwUKwQIIAxIQFwW5F8wSBIaLBjM6L3cqjBiCtIKSBSKOAjCCAQoCggEBAJntWzsyfateJO/DtiqVtZhSCtW8yzdQPgZFuBTYdrjfQFEEQa2M462xG7iMTnJaXkqeB5UpHVhYQCOn4a8OOKkSeTkwCGELbxWMh4x+Ib/7/up34QGeHleB6KRfRiY9FOYOgFioYHrc4E+shFexN6jWfM3rM3BdmDoh+07svUoQykdJDKR+ql1DghjduvHK3jOS8T1v+2RC/THhv0CwxgTRxLpMlSCkv5fuvWCSmvzu9Vu69WTi0Ods18Vcc6CCuZYSC4NZ7c4kcHCCaA1vZ8bYLErF8xNEkKdO7DevSy8BDFnoKEPiWC8La59dsPxebt9k+9MItHEbzxJQAZyfWgkCAwEAAToUbGljZW5zZS53aWRldmluZS5jb20SgAOuNHMUtag1KX8nE4j7e7jLUnfSSYI83dHaMLkzOVEes8y96gS5RLknwSE0bv296snUE5F+bsF2oQQ4RgpQO8GVK5uk5M4PxL/CCpgIqq9L/NGcHc/N9XTMrCjRtBBBbPneiAQwHL2zNMr80NQJeEI6ZC5UYT3wr8+WykqSSdhV5Cs6cD7xdn9qm9Nta/gr52u/DLpP3lnSq8x2/rZCR7hcQx+8pSJmthn8NpeVQ/ypy727+voOGlXnVaPHvOZV+WRvWCq5z3CqCLl5+Gf2Ogsrf9s2LFvE7NVV2FvKqcWTw4PIV9Sdqrd+QLeFHd/SSZiAjjWyWOddeOrAyhb3BHMEwg2T7eTo/xxvF+YkPj89qPwXCYcOxF+6gjomPwzvofcJOxkJkoMmMzcFBDopvab5tDQsyN9UPLGhGC98X/8z8QSQ+spbJTYLdgFenFoGq47gLwDS6NWYYQSqzE3Udf2W7pzk4ybyG4PHBYV3s4cyzdq8amvtE/sNSdOKReuHpfQ="

const stagingPrivacyCertB64 = "CAUSxQUKvwIIAxIQKHA0VMAI9jYYredEPbbEyBiL5/mQBSKOAjCCAQoCggEBALUhErjQXQI/zF2V4sJRwcZJtBd82NK+7zVbsGdD3mYePSq8MYK3mUbVX9wI3+lUB4FemmJ0syKix/XgZ7tfCsB6idRa6pSyUW8HW2bvgR0NJuG5priU8rmFeWKqFxxPZmMNPkxgJxiJf14e+baq9a1Nuip+FBdt8TSh0xhbWiGKwFpMQfCB7/+Ao6BAxQsJu8dA7tzY8U1nWpGYD5LKfdxkagatrVEB90oOSYzAHwBTK6wheFC9kF6QkjZWt9/v70JIZ2fzPvYoPU9CVKtyWJOQvuVYCPHWaAgNRdiTwryi901goMDQoJk87wFgRwMzTDY4E5SGvJ2vJP1noH+a2UMCAwEAAToSc3RhZ2luZy5nb29nbGUuY29tEoADmD4wNSZ19AunFfwkm9rl1KxySaJmZSHkNlVzlSlyH/iA4KrvxeJ7yYDa6tq/P8OG0ISgLIJTeEjMdT/0l7ARp9qXeIoA4qprhM19ccB6SOv2FgLMpaPzIDCnKVww2pFbkdwYubyVk7jei7UPDe3BKTi46eA5zd4Y+oLoG7AyYw/pVdhaVmzhVDAL9tTBvRJpZjVrKH1lexjOY9Dv1F/FJp6X6rEctWPlVkOyb/SfEJwhAa/K81uDLyiPDZ1Flg4lnoX7XSTb0s+Cdkxd2b9yfvvpyGH4aTIfat4YkF9Nkvmm2mU224R1hx0WjocLsjA89wxul4TJPS3oRa2CYr5+DU4uSgdZzvgtEJ0lksckKfjAF0K64rPeytvDPD5fS69eFuy3Tq26/LfGcF96njtvOUA4P5xRFtICogySKe6WnCUZcYMDtQ0BMMM1LgawFNg4VA+KDCJ8ABHg9bOOTimO0sswHrRWSWX1XF15dXolCk65yEqz5lOfa2/fVomeopkU"

func mustParsePrivacyCert(t *testing.T, b64 string) *ServiceCertificate {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	cert, err := ParseServiceCertificate(raw)
	if err != nil {
		t.Fatalf("ParseServiceCertificate: %v", err)
	}
	return cert
}

func TestParsePrivacyCertMatchesCommon(t *testing.T) {
	cert := mustParsePrivacyCert(t, commonPrivacyCertB64)
	common := CommonServiceCertificate()
	if cert.ProviderID != common.ProviderID {
		t.Fatalf("provider_id = %q, want %q", cert.ProviderID, common.ProviderID)
	}
	if cert.PublicKey.N.Cmp(common.PublicKey.N) != 0 {
		t.Fatalf("parsed public key modulus does not match CommonServiceCertificate")
	}
}

func TestParsePrivacyCertMatchesStaging(t *testing.T) {
	cert := mustParsePrivacyCert(t, stagingPrivacyCertB64)
	staging := StagingServiceCertificate()
	if cert.ProviderID != staging.ProviderID {
		t.Fatalf("provider_id = %q, want %q", cert.ProviderID, staging.ProviderID)
	}
	if cert.PublicKey.N.Cmp(staging.PublicKey.N) != 0 {
		t.Fatalf("parsed public key modulus does not match StagingServiceCertificate")
	}
}

func TestParseServiceCertificateRejectsMutatedBytes(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString(commonPrivacyCertB64)
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	raw[len(raw)-1] ^= 0x01

	if _, err := ParseServiceCertificate(raw); !IsRsa(err) {
		t.Fatalf("expected Rsa verification failure, got %v", err)
	}
}

func TestParseServiceCertificateRejectsUnsignedCertificate(t *testing.T) {
	bareCert := []byte{0x08, 0x03, 0x12, 0x02, 0x48, 0x44} // DrmCertificate bytes, no signature wrapper
	if _, err := ParseServiceCertificate(bareCert); err == nil {
		t.Fatalf("expected rejection of raw unsigned certificate")
	}
}
