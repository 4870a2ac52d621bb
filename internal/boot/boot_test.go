package boot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("accepts DMG sized images", func(t *testing.T) {
		b, err := Load(make([]byte, 256))
		require.NoError(t, err)
		assert.Len(t, b.Checksum(), 32)
	})

	t.Run("accepts CGB sized images", func(t *testing.T) {
		_, err := Load(make([]byte, 2304))
		assert.NoError(t, err)
	})

	t.Run("rejects anything else", func(t *testing.T) {
		for _, n := range []int{0, 1, 255, 257, 2303, 2305} {
			_, err := Load(make([]byte, n))
			assert.Error(t, err, "length %d", n)
		}
	})
}

func TestROM_Read(t *testing.T) {
	image := make([]byte, 256)
	image[0x42] = 0xAB
	b, err := Load(image)
	require.NoError(t, err)

	assert.Equal(t, uint8(0xAB), b.Read(0x42))
}

func TestROM_Model(t *testing.T) {
	b, err := Load(make([]byte, 256))
	require.NoError(t, err)
	assert.Equal(t, "unknown", b.Model(), "an all-zero image matches no known checksum")

	var nilROM *ROM
	assert.Equal(t, "none", nilROM.Model())
	assert.Equal(t, "", nilROM.Checksum())
}
