/*
Package widevine implements a client-side Widevine Content Decryption
Module (CDM): given a device provisioning blob and a content-protection
header, it produces a signed license request ("challenge") that a
license server accepts, then decrypts the server's license response to
recover the per-title content keys.

This package does not perform any network I/O. Sending the challenge to
a license server and receiving its response is the caller's
responsibility.

# Components

  - [Device] parses/serializes the binary ".wvd" device-credential format.
  - [ServiceCertificate] parses and verifies a server-issued certificate
    used to encrypt the client identity in "privacy mode".
  - [Pssh] parses the content-side protection header (an MP4 PSSH box or
    a bare protobuf payload).
  - [Cdm] is a cheaply-clonable façade owning a [Device] and vending
    [Session] values.
  - [Session] and [LicenseRequest] build, sign, and process the license
    request/response exchange.
  - [KeySet] holds the decrypted content keys recovered from a license.

# Usage

	device, err := widevine.ReadWVD(file)
	cdm := widevine.NewCdm(device)

	pssh, err := widevine.PsshFromB64(psshB64)
	req, err := cdm.Open().GetLicenseRequest(pssh, widevine.Streaming)
	challenge, err := req.Challenge()

	// challenge is POSTed to a license server by the caller; the
	// response bytes come back from that same external call.
	keys, err := req.GetKeys(responseBytes)
	key, err := keys.ContentKey(kid)

# Errors

Every fallible operation returns exactly one of five error kinds, see
[Error] and [Kind].
*/
package widevine
