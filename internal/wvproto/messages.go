// Package wvproto implements the subset of the Widevine license_protocol
// wire messages this CDM reads and writes: ClientIdentification,
// DrmCertificate, SignedDrmCertificate, EncryptedClientIdentification,
// the two distinct "WidevinePsshData" shapes (the PSSH-box payload and
// the LicenseRequest's nested content identification), LicenseRequest,
// SignedMessage, and License.
//
// Field numbers follow the published license_protocol.proto layout. Only
// the fields declared on each struct below are read and written; other
// fields are skipped on decode.
package wvproto

// ClientIdentification identifies a device to a license server.
type ClientIdentification struct {
	Type                 uint32
	HasType              bool
	Token                []byte
	ClientInfo           []NameValue
	ProviderClientToken  []byte
	LicenseCounter       uint32
	HasLicenseCounter    bool
	ClientCapabilities   *ClientCapabilities
	VmpData              []byte
}

// NameValue is a single client_info entry.
type NameValue struct {
	Name  string
	Value string
}

// ClientCapabilities mirrors the nested ClientIdentification.ClientCapabilities
// message, surfaced in full for device metadata diagnostics.
type ClientCapabilities struct {
	ClientToken                   *uint32
	SessionToken                  *uint32
	VideoResolutionConstraints    *uint32
	MaxHdcpVersion                *uint32
	OemCryptoApiVersion           *uint32
	AntiRollbackUsageTable        *uint32
	SrmVersion                    *uint32
	CanUpdateSrm                  *uint32
	SupportedCertificateKeyType   []uint32
	AnalogOutputCapabilities      *uint32
	CanDisableAnalogOutput        *uint32
	ResourceRatingTier            *uint32
}

// DrmCertificate carries the public key and identity of a certified entity.
type DrmCertificate struct {
	Type                uint32
	SerialNumber        []byte
	CreationTimeSeconds uint64
	PublicKey           []byte
	SystemId            uint32
	ProviderId          string
}

// SignedDrmCertificate wraps a serialized DrmCertificate with a signature
// over its exact bytes. DrmCertificate is kept as the raw encoded bytes
// (not a re-marshaled struct) because the signature is computed over that
// exact byte string.
type SignedDrmCertificate struct {
	DrmCertificate []byte
	Signature      []byte
	Signer         []byte
}

// EncryptedClientIdentification carries a privacy-mode client identity.
type EncryptedClientIdentification struct {
	ProviderId                     string
	ServiceCertificateSerialNumber []byte
	EncryptedClientId              []byte
	EncryptedClientIdIv            []byte
	EncryptedPrivacyKey            []byte
}

// PsshData is the top-level Widevine PSSH payload: the protobuf message
// carried either bare or inside an MP4 PSSH box's data field.
type PsshData struct {
	KeyIds              [][]byte
	Provider            string
	HasProvider         bool
	ContentId           []byte
	Policy              string
	HasPolicy           bool
	CryptoPeriodIndex   uint32
	HasCryptoPeriodIdx  bool
	GroupedLicense      []byte
	ProtectionScheme    uint32
	HasProtectionScheme bool
	CryptoPeriodSeconds uint32
	HasCryptoPeriodSecs bool
}

// ContentIdentification wraps the single content-id variant this CDM
// builds: a WidevinePsshData reference.
type ContentIdentification struct {
	WidevinePsshData *CidWidevinePsshData
}

// CidWidevinePsshData is LicenseRequest.ContentIdentification's nested
// WidevinePsshData message — distinct from the top-level [PsshData].
type CidWidevinePsshData struct {
	PsshData    [][]byte
	LicenseType uint32
	RequestId   []byte
}

// LicenseRequest is the unsigned challenge body.
type LicenseRequest struct {
	ClientId            []byte // raw serialized ClientIdentification, or nil
	ContentId           *ContentIdentification
	Type                uint32
	RequestTime         int64
	EncryptedClientId   *EncryptedClientIdentification
	ProtocolVersion     uint32
	KeyControlNonce     int32
}

// SignedMessage wraps a serialized message with its signature, and for
// LICENSE responses, the wrapped session key and the oemcrypto core
// message that is hashed alongside msg for integrity verification.
type SignedMessage struct {
	Type                 uint32
	Msg                  []byte
	Signature            []byte
	SessionKey           []byte
	OemCryptoCoreMessage []byte
}

// SignedMessage.Type values.
const (
	MsgTypeLicenseRequest     uint32 = 1
	MsgTypeLicense            uint32 = 2
	MsgTypeErrorResponse      uint32 = 3
	MsgTypeServiceCertificate uint32 = 5
)

// LicenseRequest.Type (RequestType) values.
const (
	RequestTypeNew uint32 = 1
)

// LicenseRequest.ProtocolVersion values.
const (
	ProtocolVersion21 uint32 = 21
)

// CidWidevinePsshData.LicenseType values.
const (
	LicenseTypeStreaming uint32 = 1
	LicenseTypeOffline   uint32 = 2
	LicenseTypeAutomatic uint32 = 3
)

// License is the server's decrypted license payload.
type License struct {
	Id  []byte
	Key []KeyContainer
}

// KeyContainer.Type (KeyType) values.
const (
	KeyTypeSigning          uint32 = 1
	KeyTypeContent          uint32 = 2
	KeyTypeKeyControl       uint32 = 3
	KeyTypeOperatorSession  uint32 = 4
	KeyTypeEntitlement      uint32 = 5
	KeyTypeOemContent       uint32 = 6
)

// KeyContainer carries one wrapped key.
type KeyContainer struct {
	Id      []byte
	HasId   bool
	Iv      []byte
	Key     []byte
	Type    uint32
}

// DrmCertificate.Type values.
const (
	CertTypeRoot        uint32 = 0
	CertTypeDeviceModel uint32 = 1
	CertTypeDevice      uint32 = 2
	CertTypeService     uint32 = 3
	CertTypeProvisioner uint32 = 4
)
