package beacon

import (
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

const targetUUID = "12345678-1234-5678-1234-56789abcdef0"

func advWithUUID(t *testing.T) []byte {
	t.Helper()
	raw, err := hex.DecodeString("020106" + "1107" + "12345678123456781234" + "56789abcdef0")
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestMatchesTargetUUID(t *testing.T) {
	assert.True(t, Matches(advWithUUID(t), targetUUID))
}

func TestMatchesIsCaseAndSeparatorInsensitive(t *testing.T) {
	adv := advWithUUID(t)
	assert.True(t, Matches(adv, "12345678123456781234-56789ABCDEF0"))
	assert.True(t, Matches(adv, "12:34:56:78:12:34:56:78:12:34:56:78:9a:bc:de:f0"))
}

func TestMatchesRejectsUnrelatedPayload(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		adv := make([]byte, 22)
		rng.Read(adv)
		assert.False(t, Matches(adv, targetUUID), "random payload %x should not match", adv)
	}
}

func TestMatchesEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		adv    []byte
		target string
	}{
		{"empty payload", nil, targetUUID},
		{"empty target", advWithUUID(t), ""},
		{"separator-only target", advWithUUID(t), "--::"},
		{"payload shorter than target", []byte{0x12, 0x34}, targetUUID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Matches(tt.adv, tt.target))
		})
	}
}
