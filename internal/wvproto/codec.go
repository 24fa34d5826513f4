package wvproto

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Marshal encodes m in ascending field-number order, the same
// deterministic ordering every message in this package uses so that
// Unmarshal(Marshal(m)) round-trips and re-serialization is reproducible.
func (m *ClientIdentification) Marshal() []byte {
	var b []byte
	if m.HasType {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.Type))
	}
	if m.Token != nil {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Token)
	}
	for _, ci := range m.ClientInfo {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, ci.Marshal())
	}
	if m.ProviderClientToken != nil {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, m.ProviderClientToken)
	}
	if m.HasLicenseCounter {
		b = protowire.AppendTag(b, 5, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.LicenseCounter))
	}
	if m.ClientCapabilities != nil {
		b = protowire.AppendTag(b, 6, protowire.BytesType)
		b = protowire.AppendBytes(b, m.ClientCapabilities.Marshal())
	}
	if m.VmpData != nil {
		b = protowire.AppendTag(b, 7, protowire.BytesType)
		b = protowire.AppendBytes(b, m.VmpData)
	}
	return b
}

// UnmarshalClientIdentification parses a serialized ClientIdentification.
func UnmarshalClientIdentification(data []byte) (*ClientIdentification, error) {
	m := &ClientIdentification{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("ClientIdentification: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("ClientIdentification.type: %w", protowire.ParseError(n))
			}
			m.Type, m.HasType = uint32(v), true
			data = data[n:]
		case 2:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("ClientIdentification.token: %w", protowire.ParseError(n))
			}
			m.Token = append([]byte{}, v...)
			data = data[n:]
		case 3:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("ClientIdentification.client_info: %w", protowire.ParseError(n))
			}
			nv, err := UnmarshalNameValue(v)
			if err != nil {
				return nil, err
			}
			m.ClientInfo = append(m.ClientInfo, *nv)
			data = data[n:]
		case 4:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("ClientIdentification.provider_client_token: %w", protowire.ParseError(n))
			}
			m.ProviderClientToken = append([]byte{}, v...)
			data = data[n:]
		case 5:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("ClientIdentification.license_counter: %w", protowire.ParseError(n))
			}
			m.LicenseCounter, m.HasLicenseCounter = uint32(v), true
			data = data[n:]
		case 6:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("ClientIdentification.client_capabilities: %w", protowire.ParseError(n))
			}
			cc, err := UnmarshalClientCapabilities(v)
			if err != nil {
				return nil, err
			}
			m.ClientCapabilities = cc
			data = data[n:]
		case 7:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("ClientIdentification.vmp_data: %w", protowire.ParseError(n))
			}
			m.VmpData = append([]byte{}, v...)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("ClientIdentification: unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return m, nil
}

// Marshal encodes a NameValue entry.
func (nv *NameValue) Marshal() []byte {
	var b []byte
	if nv.Name != "" {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, nv.Name)
	}
	if nv.Value != "" {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, nv.Value)
	}
	return b
}

// UnmarshalNameValue parses a NameValue entry.
func UnmarshalNameValue(data []byte) (*NameValue, error) {
	nv := &NameValue{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("NameValue: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, fmt.Errorf("NameValue.name: %w", protowire.ParseError(n))
			}
			nv.Name = v
			data = data[n:]
		case 2:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, fmt.Errorf("NameValue.value: %w", protowire.ParseError(n))
			}
			nv.Value = v
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("NameValue: unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return nv, nil
}

func appendOptionalVarint(b []byte, num protowire.Number, v *uint32) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(*v))
}

// Marshal encodes the nested ClientCapabilities message.
func (cc *ClientCapabilities) Marshal() []byte {
	var b []byte
	b = appendOptionalVarint(b, 1, cc.ClientToken)
	b = appendOptionalVarint(b, 2, cc.SessionToken)
	b = appendOptionalVarint(b, 3, cc.VideoResolutionConstraints)
	b = appendOptionalVarint(b, 4, cc.MaxHdcpVersion)
	b = appendOptionalVarint(b, 5, cc.OemCryptoApiVersion)
	b = appendOptionalVarint(b, 6, cc.AntiRollbackUsageTable)
	b = appendOptionalVarint(b, 7, cc.SrmVersion)
	b = appendOptionalVarint(b, 8, cc.CanUpdateSrm)
	for _, t := range cc.SupportedCertificateKeyType {
		b = protowire.AppendTag(b, 9, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(t))
	}
	b = appendOptionalVarint(b, 10, cc.AnalogOutputCapabilities)
	b = appendOptionalVarint(b, 11, cc.CanDisableAnalogOutput)
	b = appendOptionalVarint(b, 12, cc.ResourceRatingTier)
	return b
}

// UnmarshalClientCapabilities parses the nested ClientCapabilities message.
func UnmarshalClientCapabilities(data []byte) (*ClientCapabilities, error) {
	cc := &ClientCapabilities{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("ClientCapabilities: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case 1, 2, 3, 4, 5, 6, 7, 8, 10, 11, 12:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("ClientCapabilities field %d: %w", num, protowire.ParseError(n))
			}
			u := uint32(v)
			switch num {
			case 1:
				cc.ClientToken = &u
			case 2:
				cc.SessionToken = &u
			case 3:
				cc.VideoResolutionConstraints = &u
			case 4:
				cc.MaxHdcpVersion = &u
			case 5:
				cc.OemCryptoApiVersion = &u
			case 6:
				cc.AntiRollbackUsageTable = &u
			case 7:
				cc.SrmVersion = &u
			case 8:
				cc.CanUpdateSrm = &u
			case 10:
				cc.AnalogOutputCapabilities = &u
			case 11:
				cc.CanDisableAnalogOutput = &u
			case 12:
				cc.ResourceRatingTier = &u
			}
			data = data[n:]
		case 9:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("ClientCapabilities.supported_certificate_key_type: %w", protowire.ParseError(n))
			}
			cc.SupportedCertificateKeyType = append(cc.SupportedCertificateKeyType, uint32(v))
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("ClientCapabilities: unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return cc, nil
}

// Marshal encodes a DrmCertificate.
func (c *DrmCertificate) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(c.Type))
	if c.SerialNumber != nil {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, c.SerialNumber)
	}
	if c.CreationTimeSeconds != 0 {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, c.CreationTimeSeconds)
	}
	if c.PublicKey != nil {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, c.PublicKey)
	}
	if c.SystemId != 0 {
		b = protowire.AppendTag(b, 5, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(c.SystemId))
	}
	if c.ProviderId != "" {
		b = protowire.AppendTag(b, 7, protowire.BytesType)
		b = protowire.AppendString(b, c.ProviderId)
	}
	return b
}

// UnmarshalDrmCertificate parses a DrmCertificate.
func UnmarshalDrmCertificate(data []byte) (*DrmCertificate, error) {
	c := &DrmCertificate{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("DrmCertificate: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("DrmCertificate.type: %w", protowire.ParseError(n))
			}
			c.Type = uint32(v)
			data = data[n:]
		case 2:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("DrmCertificate.serial_number: %w", protowire.ParseError(n))
			}
			c.SerialNumber = append([]byte{}, v...)
			data = data[n:]
		case 3:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("DrmCertificate.creation_time_seconds: %w", protowire.ParseError(n))
			}
			c.CreationTimeSeconds = v
			data = data[n:]
		case 4:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("DrmCertificate.public_key: %w", protowire.ParseError(n))
			}
			c.PublicKey = append([]byte{}, v...)
			data = data[n:]
		case 5:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("DrmCertificate.system_id: %w", protowire.ParseError(n))
			}
			c.SystemId = uint32(v)
			data = data[n:]
		case 7:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, fmt.Errorf("DrmCertificate.provider_id: %w", protowire.ParseError(n))
			}
			c.ProviderId = v
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("DrmCertificate: unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return c, nil
}

// Marshal encodes a SignedDrmCertificate.
func (s *SignedDrmCertificate) Marshal() []byte {
	var b []byte
	if s.DrmCertificate != nil {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, s.DrmCertificate)
	}
	if s.Signature != nil {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, s.Signature)
	}
	if s.Signer != nil {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, s.Signer)
	}
	return b
}

// UnmarshalSignedDrmCertificate parses a SignedDrmCertificate.
func UnmarshalSignedDrmCertificate(data []byte) (*SignedDrmCertificate, error) {
	s := &SignedDrmCertificate{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("SignedDrmCertificate: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("SignedDrmCertificate.drm_certificate: %w", protowire.ParseError(n))
			}
			s.DrmCertificate = append([]byte{}, v...)
			data = data[n:]
		case 2:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("SignedDrmCertificate.signature: %w", protowire.ParseError(n))
			}
			s.Signature = append([]byte{}, v...)
			data = data[n:]
		case 3:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("SignedDrmCertificate.signer: %w", protowire.ParseError(n))
			}
			s.Signer = append([]byte{}, v...)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("SignedDrmCertificate: unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return s, nil
}

// Marshal encodes an EncryptedClientIdentification.
func (e *EncryptedClientIdentification) Marshal() []byte {
	var b []byte
	if e.ProviderId != "" {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, e.ProviderId)
	}
	if e.ServiceCertificateSerialNumber != nil {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, e.ServiceCertificateSerialNumber)
	}
	if e.EncryptedClientId != nil {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, e.EncryptedClientId)
	}
	if e.EncryptedClientIdIv != nil {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, e.EncryptedClientIdIv)
	}
	if e.EncryptedPrivacyKey != nil {
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendBytes(b, e.EncryptedPrivacyKey)
	}
	return b
}

// UnmarshalEncryptedClientIdentification parses an
// EncryptedClientIdentification.
func UnmarshalEncryptedClientIdentification(data []byte) (*EncryptedClientIdentification, error) {
	e := &EncryptedClientIdentification{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("EncryptedClientIdentification: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, fmt.Errorf("EncryptedClientIdentification.provider_id: %w", protowire.ParseError(n))
			}
			e.ProviderId = v
			data = data[n:]
		case 2:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("EncryptedClientIdentification.service_certificate_serial_number: %w", protowire.ParseError(n))
			}
			e.ServiceCertificateSerialNumber = append([]byte{}, v...)
			data = data[n:]
		case 3:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("EncryptedClientIdentification.encrypted_client_id: %w", protowire.ParseError(n))
			}
			e.EncryptedClientId = append([]byte{}, v...)
			data = data[n:]
		case 4:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("EncryptedClientIdentification.encrypted_client_id_iv: %w", protowire.ParseError(n))
			}
			e.EncryptedClientIdIv = append([]byte{}, v...)
			data = data[n:]
		case 5:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("EncryptedClientIdentification.encrypted_privacy_key: %w", protowire.ParseError(n))
			}
			e.EncryptedPrivacyKey = append([]byte{}, v...)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("EncryptedClientIdentification: unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return e, nil
}

// Marshal encodes a top-level PsshData message (the PSSH box payload
// shape, distinct from [CidWidevinePsshData]).
func (p *PsshData) Marshal() []byte {
	var b []byte
	for _, k := range p.KeyIds {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, k)
	}
	if p.HasProvider {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendString(b, p.Provider)
	}
	if p.ContentId != nil {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, p.ContentId)
	}
	if p.HasPolicy {
		b = protowire.AppendTag(b, 6, protowire.BytesType)
		b = protowire.AppendString(b, p.Policy)
	}
	if p.HasCryptoPeriodIdx {
		b = protowire.AppendTag(b, 7, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(p.CryptoPeriodIndex))
	}
	if p.GroupedLicense != nil {
		b = protowire.AppendTag(b, 8, protowire.BytesType)
		b = protowire.AppendBytes(b, p.GroupedLicense)
	}
	if p.HasProtectionScheme {
		b = protowire.AppendTag(b, 9, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(p.ProtectionScheme))
	}
	if p.HasCryptoPeriodSecs {
		b = protowire.AppendTag(b, 10, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(p.CryptoPeriodSeconds))
	}
	return b
}

// UnmarshalPsshData parses a top-level PsshData message.
func UnmarshalPsshData(data []byte) (*PsshData, error) {
	p := &PsshData{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("PsshData: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case 2:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("PsshData.key_id: %w", protowire.ParseError(n))
			}
			p.KeyIds = append(p.KeyIds, append([]byte{}, v...))
			data = data[n:]
		case 3:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, fmt.Errorf("PsshData.provider: %w", protowire.ParseError(n))
			}
			p.Provider, p.HasProvider = v, true
			data = data[n:]
		case 4:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("PsshData.content_id: %w", protowire.ParseError(n))
			}
			p.ContentId = append([]byte{}, v...)
			data = data[n:]
		case 6:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, fmt.Errorf("PsshData.policy: %w", protowire.ParseError(n))
			}
			p.Policy, p.HasPolicy = v, true
			data = data[n:]
		case 7:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("PsshData.crypto_period_index: %w", protowire.ParseError(n))
			}
			p.CryptoPeriodIndex, p.HasCryptoPeriodIdx = uint32(v), true
			data = data[n:]
		case 8:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("PsshData.grouped_license: %w", protowire.ParseError(n))
			}
			p.GroupedLicense = append([]byte{}, v...)
			data = data[n:]
		case 9:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("PsshData.protection_scheme: %w", protowire.ParseError(n))
			}
			p.ProtectionScheme, p.HasProtectionScheme = uint32(v), true
			data = data[n:]
		case 10:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("PsshData.crypto_period_seconds: %w", protowire.ParseError(n))
			}
			p.CryptoPeriodSeconds, p.HasCryptoPeriodSecs = uint32(v), true
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("PsshData: unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return p, nil
}

// Marshal encodes the LicenseRequest.ContentIdentification.WidevinePsshData
// nested message.
func (w *CidWidevinePsshData) Marshal() []byte {
	var b []byte
	for _, d := range w.PsshData {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, d)
	}
	if w.LicenseType != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(w.LicenseType))
	}
	if w.RequestId != nil {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, w.RequestId)
	}
	return b
}

// UnmarshalCidWidevinePsshData parses the LicenseRequest's nested
// WidevinePsshData content-identification message.
func UnmarshalCidWidevinePsshData(data []byte) (*CidWidevinePsshData, error) {
	w := &CidWidevinePsshData{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("CidWidevinePsshData: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("CidWidevinePsshData.pssh_data: %w", protowire.ParseError(n))
			}
			w.PsshData = append(w.PsshData, append([]byte{}, v...))
			data = data[n:]
		case 2:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("CidWidevinePsshData.license_type: %w", protowire.ParseError(n))
			}
			w.LicenseType = uint32(v)
			data = data[n:]
		case 3:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("CidWidevinePsshData.request_id: %w", protowire.ParseError(n))
			}
			w.RequestId = append([]byte{}, v...)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("CidWidevinePsshData: unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return w, nil
}

// Marshal encodes the ContentIdentification wrapper.
func (ci *ContentIdentification) Marshal() []byte {
	var b []byte
	if ci.WidevinePsshData != nil {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, ci.WidevinePsshData.Marshal())
	}
	return b
}

// UnmarshalContentIdentification parses the ContentIdentification wrapper.
func UnmarshalContentIdentification(data []byte) (*ContentIdentification, error) {
	ci := &ContentIdentification{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("ContentIdentification: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("ContentIdentification.widevine_pssh_data: %w", protowire.ParseError(n))
			}
			w, err := UnmarshalCidWidevinePsshData(v)
			if err != nil {
				return nil, err
			}
			ci.WidevinePsshData = w
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("ContentIdentification: unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return ci, nil
}

// Marshal encodes a LicenseRequest.
func (r *LicenseRequest) Marshal() []byte {
	var b []byte
	if r.ClientId != nil {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, r.ClientId)
	}
	if r.ContentId != nil {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, r.ContentId.Marshal())
	}
	if r.Type != 0 {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.Type))
	}
	b = protowire.AppendTag(b, 4, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.RequestTime))
	if r.ProtocolVersion != 0 {
		b = protowire.AppendTag(b, 6, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.ProtocolVersion))
	}
	b = protowire.AppendTag(b, 7, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(uint32(r.KeyControlNonce)))
	if r.EncryptedClientId != nil {
		b = protowire.AppendTag(b, 8, protowire.BytesType)
		b = protowire.AppendBytes(b, r.EncryptedClientId.Marshal())
	}
	return b
}

// UnmarshalLicenseRequest parses a LicenseRequest.
func UnmarshalLicenseRequest(data []byte) (*LicenseRequest, error) {
	r := &LicenseRequest{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("LicenseRequest: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("LicenseRequest.client_id: %w", protowire.ParseError(n))
			}
			r.ClientId = append([]byte{}, v...)
			data = data[n:]
		case 2:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("LicenseRequest.content_id: %w", protowire.ParseError(n))
			}
			ci, err := UnmarshalContentIdentification(v)
			if err != nil {
				return nil, err
			}
			r.ContentId = ci
			data = data[n:]
		case 3:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("LicenseRequest.type: %w", protowire.ParseError(n))
			}
			r.Type = uint32(v)
			data = data[n:]
		case 4:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("LicenseRequest.request_time: %w", protowire.ParseError(n))
			}
			r.RequestTime = int64(v)
			data = data[n:]
		case 8:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("LicenseRequest.encrypted_client_id: %w", protowire.ParseError(n))
			}
			e, err := UnmarshalEncryptedClientIdentification(v)
			if err != nil {
				return nil, err
			}
			r.EncryptedClientId = e
			data = data[n:]
		case 6:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("LicenseRequest.protocol_version: %w", protowire.ParseError(n))
			}
			r.ProtocolVersion = uint32(v)
			data = data[n:]
		case 7:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("LicenseRequest.key_control_nonce: %w", protowire.ParseError(n))
			}
			r.KeyControlNonce = int32(uint32(v))
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("LicenseRequest: unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return r, nil
}

// Marshal encodes a SignedMessage.
func (s *SignedMessage) Marshal() []byte {
	var b []byte
	if s.Type != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(s.Type))
	}
	if s.Msg != nil {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, s.Msg)
	}
	if s.Signature != nil {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, s.Signature)
	}
	if s.SessionKey != nil {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, s.SessionKey)
	}
	if s.OemCryptoCoreMessage != nil {
		b = protowire.AppendTag(b, 9, protowire.BytesType)
		b = protowire.AppendBytes(b, s.OemCryptoCoreMessage)
	}
	return b
}

// UnmarshalSignedMessage parses a SignedMessage.
func UnmarshalSignedMessage(data []byte) (*SignedMessage, error) {
	s := &SignedMessage{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("SignedMessage: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("SignedMessage.type: %w", protowire.ParseError(n))
			}
			s.Type = uint32(v)
			data = data[n:]
		case 2:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("SignedMessage.msg: %w", protowire.ParseError(n))
			}
			s.Msg = append([]byte{}, v...)
			data = data[n:]
		case 3:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("SignedMessage.signature: %w", protowire.ParseError(n))
			}
			s.Signature = append([]byte{}, v...)
			data = data[n:]
		case 4:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("SignedMessage.session_key: %w", protowire.ParseError(n))
			}
			s.SessionKey = append([]byte{}, v...)
			data = data[n:]
		case 9:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("SignedMessage.oemcrypto_core_message: %w", protowire.ParseError(n))
			}
			s.OemCryptoCoreMessage = append([]byte{}, v...)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("SignedMessage: unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return s, nil
}

// Marshal encodes a single License.KeyContainer entry.
func (kc *KeyContainer) Marshal() []byte {
	var b []byte
	if kc.HasId {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, kc.Id)
	}
	if kc.Iv != nil {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, kc.Iv)
	}
	if kc.Key != nil {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, kc.Key)
	}
	if kc.Type != 0 {
		b = protowire.AppendTag(b, 4, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(kc.Type))
	}
	return b
}

// Marshal encodes a License.
func (l *License) Marshal() []byte {
	var b []byte
	if l.Id != nil {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, l.Id)
	}
	for i := range l.Key {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, l.Key[i].Marshal())
	}
	return b
}

// UnmarshalLicense parses a License.
func UnmarshalLicense(data []byte) (*License, error) {
	l := &License{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("License: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("License.id: %w", protowire.ParseError(n))
			}
			l.Id = append([]byte{}, v...)
			data = data[n:]
		case 3:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("License.key: %w", protowire.ParseError(n))
			}
			kc, err := UnmarshalKeyContainer(v)
			if err != nil {
				return nil, err
			}
			l.Key = append(l.Key, *kc)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("License: unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return l, nil
}

// UnmarshalKeyContainer parses a single License.KeyContainer entry.
func UnmarshalKeyContainer(data []byte) (*KeyContainer, error) {
	kc := &KeyContainer{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("KeyContainer: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("KeyContainer.id: %w", protowire.ParseError(n))
			}
			kc.Id, kc.HasId = append([]byte{}, v...), true
			data = data[n:]
		case 2:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("KeyContainer.iv: %w", protowire.ParseError(n))
			}
			kc.Iv = append([]byte{}, v...)
			data = data[n:]
		case 3:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("KeyContainer.key: %w", protowire.ParseError(n))
			}
			kc.Key = append([]byte{}, v...)
			data = data[n:]
		case 4:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("KeyContainer.type: %w", protowire.ParseError(n))
			}
			kc.Type = uint32(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("KeyContainer: unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return kc, nil
}
