package widevine

import "github.com/barnettlynn/widevine/internal/wvproto"

// HdcpVersion mirrors the wire enum carried in ClientCapabilities.max_hdcp_version.
type HdcpVersion uint32

// CertificateKeyType mirrors the wire enum in
// ClientCapabilities.supported_certificate_key_type.
type CertificateKeyType uint32

// AnalogOutputCapabilities mirrors the wire enum in
// ClientCapabilities.analog_output_capabilities.
type AnalogOutputCapabilities uint32

// ClientCapabilities is a read-only, JSON-marshalable projection of the
// client identity's capability fields, for diagnostics only — no CDM
// behavior depends on it.
type ClientCapabilities struct {
	ClientToken                 *uint32              `json:"client_token,omitempty"`
	SessionToken                *uint32              `json:"session_token,omitempty"`
	VideoResolutionConstraints  *uint32              `json:"video_resolution_constraints,omitempty"`
	MaxHdcpVersion              *HdcpVersion         `json:"max_hdcp_version,omitempty"`
	OemCryptoApiVersion         *uint32              `json:"oem_crypto_api_version,omitempty"`
	AntiRollbackUsageTable      *uint32              `json:"anti_rollback_usage_table,omitempty"`
	SrmVersion                  *uint32              `json:"srm_version,omitempty"`
	CanUpdateSrm                *bool                `json:"can_update_srm,omitempty"`
	SupportedCertificateKeyType []CertificateKeyType `json:"supported_certificate_key_type,omitempty"`
	AnalogOutputCapabilities    *AnalogOutputCapabilities `json:"analog_output_capabilities,omitempty"`
	CanDisableAnalogOutput      *bool                `json:"can_disable_analog_output,omitempty"`
	ResourceRatingTier          *uint32              `json:"resource_rating_tier,omitempty"`
}

// ClientMetadata is a read-only projection of a Device's parsed
// ClientIdentification, intended for diagnostics (e.g. cmd/wvdgen's
// "inspect" subcommand). No CDM behavior depends on it.
type ClientMetadata struct {
	DeviceType    DeviceType          `json:"device_type"`
	SecurityLevel SecurityLevel       `json:"security_level"`
	ClientInfo    map[string]string   `json:"client_info,omitempty"`
	Capabilities  *ClientCapabilities `json:"capabilities,omitempty"`
}

// Metadata decodes d's client identity and projects it into a
// ClientMetadata value for diagnostic display.
func (d *Device) Metadata() (*ClientMetadata, error) {
	cid, err := wvproto.UnmarshalClientIdentification(d.clientID)
	if err != nil {
		return nil, invalidInput("client_id is not a valid ClientIdentification: %v", err)
	}

	info := make(map[string]string, len(cid.ClientInfo))
	for _, nv := range cid.ClientInfo {
		info[nv.Name] = nv.Value
	}

	md := &ClientMetadata{
		DeviceType:    d.deviceType,
		SecurityLevel: d.securityLevel,
		ClientInfo:    info,
	}
	if cid.ClientCapabilities != nil {
		md.Capabilities = projectCapabilities(cid.ClientCapabilities)
	}
	return md, nil
}

func projectCapabilities(cc *wvproto.ClientCapabilities) *ClientCapabilities {
	out := &ClientCapabilities{
		ClientToken:                cc.ClientToken,
		SessionToken:               cc.SessionToken,
		VideoResolutionConstraints: cc.VideoResolutionConstraints,
		OemCryptoApiVersion:        cc.OemCryptoApiVersion,
		AntiRollbackUsageTable:     cc.AntiRollbackUsageTable,
		SrmVersion:                 cc.SrmVersion,
		ResourceRatingTier:         cc.ResourceRatingTier,
	}
	if cc.MaxHdcpVersion != nil {
		v := HdcpVersion(*cc.MaxHdcpVersion)
		out.MaxHdcpVersion = &v
	}
	if cc.CanUpdateSrm != nil {
		v := *cc.CanUpdateSrm != 0
		out.CanUpdateSrm = &v
	}
	if cc.AnalogOutputCapabilities != nil {
		v := AnalogOutputCapabilities(*cc.AnalogOutputCapabilities)
		out.AnalogOutputCapabilities = &v
	}
	if cc.CanDisableAnalogOutput != nil {
		v := *cc.CanDisableAnalogOutput != 0
		out.CanDisableAnalogOutput = &v
	}
	for _, t := range cc.SupportedCertificateKeyType {
		out.SupportedCertificateKeyType = append(out.SupportedCertificateKeyType, CertificateKeyType(t))
	}
	return out
}
