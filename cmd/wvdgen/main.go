// Command wvdgen generates and inspects local ".wvd" device-credential
// files. It does not talk to a license server: it only turns a device
// descriptor (YAML + an RSA private key + a serialized client identity)
// into a WVD file, or prints the diagnostic metadata projection of an
// existing one.
package main

import (
	"crypto/x509"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/barnettlynn/widevine"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "generate":
		runGenerate(os.Args[2:])
	case "inspect":
		runInspect(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: wvdgen generate -descriptor device.yaml -out device.wvd")
	fmt.Fprintln(os.Stderr, "       wvdgen inspect device.wvd")
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	descriptorPath := fs.String("descriptor", "", "path to a device descriptor YAML file (required)")
	out := fs.String("out", "device.wvd", "output .wvd path")
	verbose := fs.Bool("v", false, "enable debug logging")
	fs.Parse(args)

	configureLogging(*verbose)

	if *descriptorPath == "" {
		log.Fatalf("-descriptor is required")
	}

	desc, err := loadDeviceDescriptor(*descriptorPath)
	if err != nil {
		log.Fatalf("load descriptor: %v", err)
	}

	keyDER, err := os.ReadFile(desc.PrivateKey)
	if err != nil {
		log.Fatalf("read private key: %v", err)
	}
	priv, err := x509.ParsePKCS1PrivateKey(keyDER)
	if err != nil {
		log.Fatalf("private key is not valid PKCS#1 DER: %v", err)
	}
	clientID, err := os.ReadFile(desc.ClientID)
	if err != nil {
		log.Fatalf("read client_id: %v", err)
	}

	dt, err := deviceTypeFromString(desc.DeviceType)
	if err != nil {
		log.Fatalf("device_type: %v", err)
	}
	level, err := securityLevelFromString(desc.SecurityLevel)
	if err != nil {
		log.Fatalf("security_level: %v", err)
	}

	dev, err := widevine.NewDevice(dt, level, priv, clientID)
	if err != nil {
		log.Fatalf("construct device: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()

	if err := dev.WriteWVD(f); err != nil {
		log.Fatalf("write wvd: %v", err)
	}
	fmt.Printf("Wrote %s (%s, %s)\n", *out, dt, level)
}

func runInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	verbose := fs.Bool("v", false, "enable debug logging")
	fs.Parse(args)
	configureLogging(*verbose)

	if fs.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	wvdPath := fs.Arg(0)

	f, err := os.Open(wvdPath)
	if err != nil {
		log.Fatalf("open %s: %v", wvdPath, err)
	}
	defer f.Close()

	dev, err := widevine.ReadWVD(f)
	if err != nil {
		log.Fatalf("read wvd: %v", err)
	}

	md, err := dev.Metadata()
	if err != nil {
		log.Fatalf("metadata: %v", err)
	}

	out, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		log.Fatalf("marshal metadata: %v", err)
	}
	fmt.Println(string(out))
}

func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func deviceTypeFromString(s string) (widevine.DeviceType, error) {
	switch s {
	case "CHROME", "chrome":
		return widevine.DeviceTypeChrome, nil
	case "ANDROID", "android":
		return widevine.DeviceTypeAndroid, nil
	default:
		return 0, fmt.Errorf("device_type must be CHROME or ANDROID, got %q", s)
	}
}

func securityLevelFromString(s string) (widevine.SecurityLevel, error) {
	switch s {
	case "L1", "l1":
		return widevine.SecurityLevelL1, nil
	case "L2", "l2":
		return widevine.SecurityLevelL2, nil
	case "L3", "l3":
		return widevine.SecurityLevelL3, nil
	default:
		return 0, fmt.Errorf("security_level must be L1, L2, or L3, got %q", s)
	}
}
