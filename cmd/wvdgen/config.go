package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// deviceDescriptor is the YAML shape "wvdgen generate" reads: a device
// type/security level pair plus on-disk paths to the RSA private key
// (PKCS#1 DER) and the serialized client identity, resolved relative to
// the descriptor file's directory, matching sdmconfig/internal/config's
// resolvePaths convention.
type deviceDescriptor struct {
	DeviceType    string `yaml:"device_type"`
	SecurityLevel string `yaml:"security_level"`
	PrivateKey    string `yaml:"private_key_der"`
	ClientID      string `yaml:"client_id"`
}

func loadDeviceDescriptor(path string) (*deviceDescriptor, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var d deviceDescriptor
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("parse descriptor yaml: %w", err)
	}
	d.resolvePaths(path)
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *deviceDescriptor) resolvePaths(descriptorPath string) {
	dir := filepath.Dir(descriptorPath)
	d.PrivateKey = resolvePath(dir, d.PrivateKey)
	d.ClientID = resolvePath(dir, d.ClientID)
}

func resolvePath(baseDir, path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Clean(filepath.Join(baseDir, trimmed))
}

func (d *deviceDescriptor) validate() error {
	switch up := strings.ToUpper(strings.TrimSpace(d.DeviceType)); up {
	case "CHROME", "ANDROID":
		d.DeviceType = up
	default:
		return fmt.Errorf("device_type must be CHROME or ANDROID, got %q", d.DeviceType)
	}
	switch up := strings.ToUpper(strings.TrimSpace(d.SecurityLevel)); up {
	case "L1", "L2", "L3":
		d.SecurityLevel = up
	default:
		return fmt.Errorf("security_level must be L1, L2, or L3, got %q", d.SecurityLevel)
	}
	if strings.TrimSpace(d.PrivateKey) == "" {
		return fmt.Errorf("private_key_der is required")
	}
	if err := validateReadableFile(d.PrivateKey, "private_key_der"); err != nil {
		return err
	}
	if strings.TrimSpace(d.ClientID) == "" {
		return fmt.Errorf("client_id is required")
	}
	if err := validateReadableFile(d.ClientID, "client_id"); err != nil {
		return err
	}
	return nil
}

func validateReadableFile(path, field string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s must point to a file, got directory", field)
	}
	return nil
}
