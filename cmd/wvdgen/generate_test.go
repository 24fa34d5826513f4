package main

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"

	"github.com/barnettlynn/widevine"
)

// TestDescriptorDrivenDeviceRoundTrip exercises the same steps runGenerate
// and runInspect perform, without going through flag parsing / os.Exit.
func TestDescriptorDrivenDeviceRoundTrip(t *testing.T) {
	tmp := t.TempDir()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	keyPath := filepath.Join(tmp, "key.der")
	if err := os.WriteFile(keyPath, x509.MarshalPKCS1PrivateKey(priv), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}

	cidPath := filepath.Join(tmp, "client_id.bin")
	clientID := testClientIdentification(t)
	if err := os.WriteFile(cidPath, clientID, 0o600); err != nil {
		t.Fatalf("write client_id: %v", err)
	}

	descPath := filepath.Join(tmp, "device.yaml")
	descYAML := "device_type: android\nsecurity_level: l3\nprivate_key_der: key.der\nclient_id: client_id.bin\n"
	if err := os.WriteFile(descPath, []byte(descYAML), 0o600); err != nil {
		t.Fatalf("write descriptor: %v", err)
	}

	desc, err := loadDeviceDescriptor(descPath)
	if err != nil {
		t.Fatalf("loadDeviceDescriptor: %v", err)
	}
	if desc.DeviceType != "ANDROID" || desc.SecurityLevel != "L3" {
		t.Fatalf("descriptor fields not normalized: %+v", desc)
	}

	dt, err := deviceTypeFromString(desc.DeviceType)
	if err != nil {
		t.Fatalf("deviceTypeFromString: %v", err)
	}
	level, err := securityLevelFromString(desc.SecurityLevel)
	if err != nil {
		t.Fatalf("securityLevelFromString: %v", err)
	}

	dev, err := widevine.NewDevice(dt, level, priv, clientID)
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}

	wvdPath := filepath.Join(tmp, "device.wvd")
	f, err := os.Create(wvdPath)
	if err != nil {
		t.Fatalf("create wvd: %v", err)
	}
	if err := dev.WriteWVD(f); err != nil {
		t.Fatalf("WriteWVD: %v", err)
	}
	f.Close()

	f2, err := os.Open(wvdPath)
	if err != nil {
		t.Fatalf("open wvd: %v", err)
	}
	defer f2.Close()
	got, err := widevine.ReadWVD(f2)
	if err != nil {
		t.Fatalf("ReadWVD: %v", err)
	}
	if got.DeviceType() != widevine.DeviceTypeAndroid || got.SecurityLevel() != widevine.SecurityLevelL3 {
		t.Fatalf("round-tripped device_type/security_level mismatch")
	}
	if !bytes.Equal(got.ClientID(), clientID) {
		t.Fatalf("round-tripped client_id mismatch")
	}

	md, err := got.Metadata()
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if md.ClientInfo["company_name"] != "widevine" {
		t.Fatalf("metadata projection missing client_info: %+v", md)
	}
}

func testClientIdentification(t *testing.T) []byte {
	t.Helper()
	// A minimal hand-encoded ClientIdentification: field 3 (client_info,
	// repeated NameValue) with one {name: "company_name", value: "widevine"}.
	nv := []byte{0x0a, 0x0c, 'c', 'o', 'm', 'p', 'a', 'n', 'y', '_', 'n', 'a', 'm', 'e', 0x12, 0x08, 'w', 'i', 'd', 'e', 'v', 'i', 'n', 'e'}
	return append([]byte{0x1a, byte(len(nv))}, nv...)
}
