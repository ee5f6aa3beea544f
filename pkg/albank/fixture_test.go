// ABOUTME: Fixture bank shared by the loader and layout tests
// ABOUTME: One bank, instrument, sound and wave with an order-2 codebook
package albank

import "github.com/marijnvdwerf/pokemonsnap-splat/pkg/albank/albanktest"

// Offsets used by fixtureBank
const (
	fixBank       = 0x10
	fixInstrument = 0x20
	fixSound      = 0x40
	fixEnvelope   = 0x50
	fixKeyMap     = 0x60
	fixWaveTable  = 0x70
	fixBook       = 0x90
	fixSize       = 0xE0

	fixWaveBase = 0x100
	fixWaveLen  = 0x20
)

// fixtureBank returns a bank file with one bank, one instrument, one sound
// and one ADPCM wave table whose book has order 2 and 2 predictors.
func fixtureBank() *albanktest.Builder {
	b := albanktest.NewBuilder(fixSize)

	b.At(0).S16(0x4231, 1).U32(fixBank)
	b.At(fixBank).S16(1).U8(0, 0).S32(22050).U32(0).U32(fixInstrument)
	b.At(fixInstrument).
		U8(127, 64, 5, 0, 0, 0, 0, 0, 0, 0, 0, 0).
		S16(200, 1).
		U32(fixSound)
	b.At(fixSound).U32(fixEnvelope, fixKeyMap, fixWaveTable).U8(64, 127, 0)
	b.At(fixEnvelope).S32(10000, 20000, 30000).U8(127, 100)
	b.At(fixKeyMap).U8(0, 127, 0, 127, 60).U8(uint8(0xFB)) // detune -5
	b.At(fixWaveTable).U32(fixWaveBase).S32(fixWaveLen).U8(0, 0, 0, 0).U32(0, fixBook)
	b.At(fixBook).S32(2, 2)
	for i := 0; i < 2*2*8; i++ {
		b.S16(int16(i*100 - 1500))
	}
	return b
}
