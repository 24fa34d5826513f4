package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDescriptor(t *testing.T, content string) (string, string) {
	t.Helper()
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, "key.der"), []byte("fake-der"), 0o644); err != nil {
		t.Fatalf("write key.der: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "client_id.bin"), []byte("fake-cid"), 0o644); err != nil {
		t.Fatalf("write client_id.bin: %v", err)
	}
	path := filepath.Join(tmp, "device.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write descriptor: %v", err)
	}
	return tmp, path
}

func TestLoadDeviceDescriptorResolvesRelativePaths(t *testing.T) {
	tmp, path := writeDescriptor(t, `
device_type: ANDROID
security_level: L3
private_key_der: key.der
client_id: client_id.bin
`)

	d, err := loadDeviceDescriptor(path)
	if err != nil {
		t.Fatalf("loadDeviceDescriptor: %v", err)
	}
	if d.PrivateKey != filepath.Join(tmp, "key.der") {
		t.Fatalf("private_key_der not resolved: %q", d.PrivateKey)
	}
	if d.ClientID != filepath.Join(tmp, "client_id.bin") {
		t.Fatalf("client_id not resolved: %q", d.ClientID)
	}
}

func TestLoadDeviceDescriptorRejectsBadDeviceType(t *testing.T) {
	_, path := writeDescriptor(t, `
device_type: PLAYSTATION
security_level: L3
private_key_der: key.der
client_id: client_id.bin
`)
	_, err := loadDeviceDescriptor(path)
	if err == nil || !strings.Contains(err.Error(), "device_type must be") {
		t.Fatalf("expected device_type validation error, got %v", err)
	}
}

func TestLoadDeviceDescriptorRejectsMissingKeyFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "device.yaml")
	content := `
device_type: CHROME
security_level: L1
private_key_der: missing.der
client_id: missing_cid.bin
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write descriptor: %v", err)
	}

	_, err := loadDeviceDescriptor(path)
	if err == nil || !strings.Contains(err.Error(), "private_key_der") {
		t.Fatalf("expected missing private key file error, got %v", err)
	}
}

func TestDeviceTypeFromStringRejectsUnknownValue(t *testing.T) {
	if _, err := deviceTypeFromString("PLAYSTATION"); err == nil {
		t.Fatalf("expected an error for an unrecognized device_type")
	}
}

func TestSecurityLevelFromStringRejectsUnknownValue(t *testing.T) {
	if _, err := securityLevelFromString("L9"); err == nil {
		t.Fatalf("expected an error for an unrecognized security_level")
	}
}
