package hdkeys

import "testing"

func testSeed() []byte {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	return seed
}

func TestMasterKeyDerivesSigningKey(t *testing.T) {
	master, err := NewMasterKey(testSeed())
	if err != nil {
		t.Fatalf("NewMasterKey: %s", err)
	}
	if !master.IsPrivate() {
		t.Fatalf("master key should be private")
	}
	if _, err := master.PrivateKey(); err != nil {
		t.Fatalf("PrivateKey: %s", err)
	}
}

func TestDerivePathIsDeterministic(t *testing.T) {
	master, err := NewMasterKey(testSeed())
	if err != nil {
		t.Fatalf("NewMasterKey: %s", err)
	}

	path := []uint32{Hardened + 44, Hardened, 0, 0}
	a, err := master.Derive(path)
	if err != nil {
		t.Fatalf("Derive: %s", err)
	}
	b, err := master.Derive(path)
	if err != nil {
		t.Fatalf("Derive: %s", err)
	}
	if a.String() != b.String() {
		t.Fatalf("deriving the same path twice should yield the same key")
	}
}

func TestNeuterDropsPrivateKey(t *testing.T) {
	master, err := NewMasterKey(testSeed())
	if err != nil {
		t.Fatalf("NewMasterKey: %s", err)
	}
	pub := master.Neuter()
	if pub.IsPrivate() {
		t.Fatalf("neutered key should not be private")
	}
	if _, err := pub.PrivateKey(); err == nil {
		t.Fatalf("expected error getting private key from a neutered key")
	}
	if _, err := pub.PublicKey(); err != nil {
		t.Fatalf("PublicKey: %s", err)
	}
}

func TestExtendedKeyStringRoundTrip(t *testing.T) {
	master, err := NewMasterKey(testSeed())
	if err != nil {
		t.Fatalf("NewMasterKey: %s", err)
	}
	s := master.String()
	parsed, err := ExtendedKeyFromString(s)
	if err != nil {
		t.Fatalf("ExtendedKeyFromString: %s", err)
	}
	if parsed.String() != s {
		t.Fatalf("round trip mismatch: %s != %s", parsed.String(), s)
	}
}
