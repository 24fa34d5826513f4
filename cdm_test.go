package widevine

import "testing"

func TestSessionNumbersIncreaseMonotonically(t *testing.T) {
	dev := testDevice(t)
	cdm := NewCdm(dev)

	s1 := cdm.Open()
	s2 := cdm.Open()
	s3 := cdm.Open()

	if !(s1.Number() < s2.Number() && s2.Number() < s3.Number()) {
		t.Fatalf("session numbers not strictly increasing: %d, %d, %d", s1.Number(), s2.Number(), s3.Number())
	}
}

func TestOpenSessionSharesDevice(t *testing.T) {
	dev := testDevice(t)
	cdm := NewCdm(dev)
	s := cdm.Open()
	if s.device != dev {
		t.Fatalf("session does not share the Cdm's device")
	}
}
