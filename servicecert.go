package widevine

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"math/big"

	"github.com/barnettlynn/widevine/internal/wvproto"
)

// rootPublicKeyModulusLE is the fixed 384-byte RSA root public key
// modulus, exponent 65537, stored little-endian per the external
// interface description.
var rootPublicKeyModulusLE = []byte{
	145, 95, 51, 210, 80, 130, 100, 180, 120, 63, 85, 150, 166, 206, 181, 247, 18, 232, 18, 167,
	111, 3, 229, 7, 62, 81, 212, 248, 185, 220, 28, 254, 197, 61, 65, 109, 136, 210, 18, 172, 60,
	147, 88, 236, 35, 184, 17, 18, 39, 71, 228, 43, 231, 231, 24, 253, 8, 165, 255, 132, 21, 104,
	125, 76, 138, 148, 124, 129, 28, 49, 151, 127, 75, 234, 60, 71, 228, 55, 13, 89, 224, 36, 179,
	17, 31, 236, 53, 200, 136, 68, 86, 13, 130, 1, 159, 242, 178, 25, 237, 37, 20, 173, 19, 57,
	140, 105, 94, 6, 41, 228, 191, 76, 96, 130, 220, 143, 120, 176, 127, 190, 220, 109, 25, 210,
	111, 239, 117, 220, 23, 91, 119, 72, 94, 79, 250, 48, 170, 183, 210, 251, 0, 61, 17, 26, 96,
	124, 186, 83, 195, 235, 220, 17, 255, 51, 69, 94, 82, 121, 152, 2, 224, 18, 230, 180, 142, 184,
	249, 177, 51, 140, 202, 52, 116, 228, 54, 107, 255, 17, 108, 200, 245, 101, 14, 146, 24, 170,
	132, 72, 136, 155, 184, 39, 31, 137, 186, 75, 236, 125, 185, 51, 178, 183, 43, 72, 130, 253,
	252, 99, 25, 62, 23, 138, 233, 176, 126, 114, 156, 203, 180, 193, 92, 130, 77, 180, 41, 189,
	193, 250, 160, 114, 62, 188, 111, 147, 37, 226, 39, 80, 64, 126, 253, 32, 38, 112, 32, 130,
	136, 168, 204, 215, 132, 235, 151, 154, 83, 156, 133, 37, 25, 225, 215, 214, 69, 113, 157, 169,
	16, 34, 217, 186, 169, 118, 174, 223, 76, 214, 146, 15, 143, 19, 118, 167, 253, 9, 253, 95, 71,
	62, 83, 105, 72, 181, 75, 236, 114, 91, 83, 171, 139, 35, 52, 190, 34, 128, 53, 176, 251, 171,
	57, 132, 138, 203, 67, 14, 70, 47, 93, 104, 22, 21, 120, 152, 33, 197, 223, 102, 190, 184, 127,
	114, 38, 149, 169, 64, 156, 63, 210, 54, 179, 219, 120, 166, 125, 53, 109, 246, 76, 83, 3, 87,
	160, 53, 159, 251, 220, 223, 101, 135, 219, 16, 177, 35, 77, 231, 242, 155, 94, 195, 242, 205,
	104, 232, 9, 151, 17, 60, 219, 3, 144, 101, 195, 57, 254, 180,
}

func rsaPublicKeyFromLE(modulusLE []byte, exponent int) *rsa.PublicKey {
	be := make([]byte, len(modulusLE))
	for i, b := range modulusLE {
		be[len(modulusLE)-1-i] = b
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(be), E: exponent}
}

func rootPublicKey() *rsa.PublicKey {
	return rsaPublicKeyFromLE(rootPublicKeyModulusLE, 65537)
}

// ServiceCertificate is a server-issued certificate whose public key
// encrypts the client identity in privacy mode. Only produced by a
// verified parse, [CommonServiceCertificate], or [StagingServiceCertificate].
type ServiceCertificate struct {
	ProviderID   string
	SerialNumber []byte
	PublicKey    *rsa.PublicKey
}

// ParseServiceCertificate verifies and parses raw bytes carrying either a
// SignedMessage wrapper (type=SERVICE_CERTIFICATE) whose msg is a
// SignedDrmCertificate, or a bare SignedDrmCertificate. A raw unsigned
// certificate is always rejected.
func ParseServiceCertificate(raw []byte) (*ServiceCertificate, error) {
	signed, err := unwrapSignedDrmCertificate(raw)
	if err != nil {
		return nil, err
	}

	digest := sha1.Sum(signed.DrmCertificate)
	opts := &rsa.PSSOptions{SaltLength: sha1.Size, Hash: crypto.SHA1}
	if err := rsa.VerifyPSS(rootPublicKey(), crypto.SHA1, digest[:], signed.Signature, opts); err != nil {
		return nil, rsaErr(err)
	}

	cert, err := wvproto.UnmarshalDrmCertificate(signed.DrmCertificate)
	if err != nil {
		return nil, protobufErr(err)
	}
	pub, err := x509.ParsePKCS1PublicKey(cert.PublicKey)
	if err != nil {
		return nil, invalidInput("certificate public key is not valid PKCS#1 DER: %v", err)
	}

	return &ServiceCertificate{
		ProviderID:   cert.ProviderId,
		SerialNumber: cert.SerialNumber,
		PublicKey:    pub,
	}, nil
}

func unwrapSignedDrmCertificate(raw []byte) (*wvproto.SignedDrmCertificate, error) {
	if sm, err := wvproto.UnmarshalSignedMessage(raw); err == nil && sm.Type == wvproto.MsgTypeServiceCertificate && len(sm.Msg) > 0 {
		if signed, err := wvproto.UnmarshalSignedDrmCertificate(sm.Msg); err == nil && len(signed.Signature) > 0 {
			return signed, nil
		}
	}
	signed, err := wvproto.UnmarshalSignedDrmCertificate(raw)
	if err != nil {
		return nil, protobufErr(err)
	}
	if len(signed.Signature) == 0 || len(signed.DrmCertificate) == 0 {
		return nil, invalidInput("certificate is not signed")
	}
	return signed, nil
}

// commonModulusLE and stagingModulusLE are the published RSA public key
// moduli (little-endian) for Google's production and staging Widevine
// license servers.
var commonModulusLE = []byte{
	9, 90, 159, 156, 1, 80, 18, 207, 27, 113, 180, 8, 211, 251, 100, 223, 110, 94,
	252, 176, 93, 159, 107, 11, 47, 88, 226, 67, 40, 232, 89, 12, 1, 47, 75, 175,
	55, 236, 78, 167, 144, 68, 19, 243, 197, 74, 44, 216, 198, 103, 111, 13, 104,
	130, 112, 112, 36, 206, 237, 89, 131, 11, 18, 150, 185, 130, 160, 115, 92, 197,
	215, 108, 231, 208, 226, 100, 245, 186, 91, 245, 238, 252, 154, 146, 96, 189,
	238, 151, 191, 164, 32, 149, 76, 186, 196, 209, 4, 198, 176, 64, 191, 225, 49,
	253, 66, 100, 251, 111, 61, 241, 146, 51, 222, 202, 241, 186, 221, 24, 130, 67,
	93, 170, 126, 164, 12, 73, 71, 202, 16, 74, 189, 236, 78, 251, 33, 58, 152, 93,
	112, 51, 235, 205, 124, 214, 168, 55, 177, 87, 132, 172, 79, 224, 220, 122, 96,
	168, 88, 128, 14, 230, 20, 61, 38, 70, 95, 164, 232, 129, 87, 30, 158, 1, 225,
	119, 234, 254, 251, 191, 33, 126, 140, 135, 140, 21, 111, 11, 97, 8, 48, 57,
	121, 18, 169, 56, 14, 175, 225, 167, 35, 64, 88, 88, 29, 41, 149, 7, 158, 74,
	94, 90, 114, 78, 140, 184, 27, 177, 173, 227, 140, 173, 65, 4, 81, 64, 223,
	184, 118, 216, 20, 184, 69, 6, 62, 80, 55, 203, 188, 213, 10, 82, 152, 181,
	149, 42, 182, 195, 239, 36, 94, 171, 125, 50, 59, 91, 237, 153,
}

var commonSerialNumber = []byte{23, 5, 185, 23, 204, 18, 4, 134, 139, 6, 51, 58, 47, 119, 42, 140}

var stagingModulusLE = []byte{
	67, 217, 154, 127, 160, 103, 253, 36, 175, 157, 188, 134, 148, 19, 56, 54, 76,
	51, 3, 71, 96, 1, 239, 60, 153, 160, 208, 192, 160, 96, 77, 247, 162, 188, 194,
	147, 216, 69, 13, 8, 104, 214, 241, 8, 88, 229, 190, 144, 147, 88, 114, 171,
	84, 66, 79, 61, 40, 246, 62, 243, 103, 103, 72, 66, 239, 239, 223, 183, 86, 54,
	146, 144, 94, 144, 189, 80, 120, 33, 172, 43, 83, 0, 31, 192, 140, 73, 14, 74,
	247, 1, 81, 173, 173, 6, 106, 100, 220, 125, 202, 146, 15, 152, 145, 90, 103,
	77, 241, 216, 220, 238, 64, 199, 187, 9, 11, 197, 64, 160, 163, 128, 255, 239,
	129, 240, 65, 76, 90, 192, 138, 33, 90, 91, 24, 211, 161, 52, 241, 109, 23, 20,
	126, 42, 186, 77, 173, 245, 170, 182, 249, 30, 94, 127, 137, 24, 39, 96, 76,
	62, 13, 99, 102, 79, 28, 23, 170, 98, 121, 133, 185, 242, 148, 184, 166, 185,
	225, 38, 13, 29, 129, 239, 102, 91, 7, 111, 81, 178, 148, 234, 90, 212, 137,
	122, 192, 10, 95, 187, 103, 224, 245, 199, 162, 34, 179, 116, 98, 154, 94, 129,
	7, 84, 233, 223, 8, 220, 95, 213, 70, 153, 183, 130, 49, 188, 42, 61, 30, 102,
	222, 67, 103, 176, 91, 53, 239, 190, 210, 216, 124, 23, 180, 73, 198, 193, 81,
	194, 226, 149, 93, 204, 63, 2, 93, 208, 184, 18, 33, 181,
}

var stagingSerialNumber = []byte{40, 112, 52, 84, 192, 8, 246, 54, 24, 173, 231, 68, 61, 182, 196, 200}

// CommonServiceCertificate returns the well-known production
// "license.widevine.com" service certificate without verification (it
// is a pinned constant matching the real published certificate).
func CommonServiceCertificate() *ServiceCertificate {
	return &ServiceCertificate{
		ProviderID:   "license.widevine.com",
		SerialNumber: commonSerialNumber,
		PublicKey:    rsaPublicKeyFromLE(commonModulusLE, 65537),
	}
}

// StagingServiceCertificate returns the well-known staging
// "staging.google.com" service certificate without verification (it is
// a pinned constant matching the real published certificate, publicly
// reachable via https://cwip-shaka-proxy.appspot.com/no_auth).
func StagingServiceCertificate() *ServiceCertificate {
	return &ServiceCertificate{
		ProviderID:   "staging.google.com",
		SerialNumber: stagingSerialNumber,
		PublicKey:    rsaPublicKeyFromLE(stagingModulusLE, 65537),
	}
}
