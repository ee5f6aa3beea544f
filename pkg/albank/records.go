// ABOUTME: Bank record types and their fixed-layout decoders
// ABOUTME: Composite records decode a prefix, then the offset array it sizes
package albank

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Record is any decoded bank record
type Record interface {
	Kind() Kind
}

// WaveType discriminates the wave table payload
type WaveType uint8

const (
	WaveADPCM WaveType = 0
	WaveRaw16 WaveType = 1
)

func (t WaveType) String() string {
	switch t {
	case WaveADPCM:
		return "ADPCM"
	case WaveRaw16:
		return "RAW16"
	}
	return fmt.Sprintf("WaveType(%d)", uint8(t))
}

func (t WaveType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ADPCMStateSize is the number of samples in a loop's decoder state
const ADPCMStateSize = 16

// BankFile is the root record at offset 0.
type BankFile struct {
	Revision  int16
	BankCount int16
	Banks     []Ref
}

// Bank is one instrument bank. Instruments keeps absent slots as nil Refs
// so that program numbers stay positional.
type Bank struct {
	InstCount   int16
	Flags       uint8
	Pad         uint8
	SampleRate  int32
	Percussion  Ref
	Instruments []Ref
}

// Instrument groups the sounds of one program.
type Instrument struct {
	Volume     uint8
	Pan        uint8
	Priority   uint8
	Flags      uint8
	TremType   uint8
	TremRate   uint8
	TremDepth  uint8
	TremDelay  uint8
	VibType    uint8
	VibRate    uint8
	VibDepth   uint8
	VibDelay   uint8
	BendRange  int16
	SoundCount int16
	Sounds     []Ref
}

// Sound binds an envelope and key map to a wave table.
type Sound struct {
	Envelope     Ref
	KeyMap       Ref
	WaveTable    Ref
	SamplePan    uint8
	SampleVolume uint8
	Flags        uint8
}

// Envelope times are in microseconds.
type Envelope struct {
	AttackTime   int32
	DecayTime    int32
	ReleaseTime  int32
	AttackVolume uint8
	DecayVolume  uint8
}

type KeyMap struct {
	VelocityMin uint8
	VelocityMax uint8
	KeyMin      uint8
	KeyMax      uint8
	KeyBase     uint8
	Detune      int8
}

// WaveTable locates one sample in the .tbl file. Loop and Book are only
// populated for ADPCM waves and may be nil.
type WaveTable struct {
	Base  uint32
	Len   int32
	Type  WaveType
	Flags uint8
	Loop  Ref
	Book  Ref
}

// Book is an ADPCM predictor codebook: NPredictors tables of Order x 8
// coefficients.
type Book struct {
	Order        int32
	NPredictors  int32
	Coefficients []int16
}

// Loop is the ADPCM decoder state captured at a loop start.
type Loop struct {
	Start uint32
	End   uint32
	Count uint32
	State [ADPCMStateSize]int16
}

func (*BankFile) Kind() Kind   { return KindBankFile }
func (*Bank) Kind() Kind       { return KindBank }
func (*Instrument) Kind() Kind { return KindInstrument }
func (*Sound) Kind() Kind      { return KindSound }
func (*Envelope) Kind() Kind   { return KindEnvelope }
func (*KeyMap) Kind() Kind     { return KindKeyMap }
func (*WaveTable) Kind() Kind  { return KindWaveTable }
func (*Book) Kind() Kind       { return KindBook }
func (*Loop) Kind() Kind       { return KindLoop }

// BookSize returns the coefficient table size in bytes for the given shape.
func BookSize(order, npredictors int32) int64 {
	return 16 * int64(order) * int64(npredictors)
}

// Packed returns the coefficient table as big-endian bytes, the layout used
// both in the bank and in the AIFC VADPCMCODES chunk.
func (b *Book) Packed() []byte {
	out := make([]byte, len(b.Coefficients)*2)
	for i, c := range b.Coefficients {
		binary.BigEndian.PutUint16(out[i*2:], uint16(c))
	}
	return out
}

type decodeFunc func(c *cursor, s *Session) (Record, error)

var decoders = map[Kind]decodeFunc{
	KindBankFile:   decodeBankFile,
	KindBank:       decodeBank,
	KindInstrument: decodeInstrument,
	KindSound:      decodeSound,
	KindEnvelope:   decodeEnvelope,
	KindKeyMap:     decodeKeyMap,
	KindWaveTable:  decodeWaveTable,
	KindBook:       decodeBook,
	KindLoop:       decodeLoop,
}

func checkCount(what string, n int16) error {
	if n < 0 {
		return fmt.Errorf("%w: %s %d", ErrInvalidCount, what, n)
	}
	return nil
}

// registerAll registers every offset, zero included.
func registerAll(s *Session, offsets []uint32, kind Kind) ([]Ref, error) {
	refs := make([]Ref, len(offsets))
	for i, off := range offsets {
		ref, err := s.Register(off, kind)
		if err != nil {
			return nil, err
		}
		refs[i] = ref
	}
	return refs, nil
}

// registerOptional treats offset 0 as absent.
func registerOptional(s *Session, offset uint32, kind Kind) (Ref, error) {
	if offset == 0 {
		return Ref{}, nil
	}
	return s.Register(offset, kind)
}

func decodeBankFile(c *cursor, s *Session) (Record, error) {
	f := &BankFile{
		Revision:  c.s16(),
		BankCount: c.s16(),
	}
	if c.err != nil {
		return nil, c.err
	}
	if err := checkCount("bank count", f.BankCount); err != nil {
		return nil, err
	}

	offsets := c.offsets(int(f.BankCount))
	if c.err != nil {
		return nil, c.err
	}

	var err error
	f.Banks, err = registerAll(s, offsets, KindBank)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func decodeBank(c *cursor, s *Session) (Record, error) {
	b := &Bank{
		InstCount:  c.s16(),
		Flags:      c.u8(),
		Pad:        c.u8(),
		SampleRate: c.s32(),
	}
	if c.err != nil {
		return nil, c.err
	}
	if err := checkCount("instrument count", b.InstCount); err != nil {
		return nil, err
	}

	percussion := c.u32()
	offsets := c.offsets(int(b.InstCount))
	if c.err != nil {
		return nil, c.err
	}

	var err error
	if b.Percussion, err = registerOptional(s, percussion, KindInstrument); err != nil {
		return nil, err
	}

	b.Instruments = make([]Ref, len(offsets))
	for i, off := range offsets {
		if b.Instruments[i], err = registerOptional(s, off, KindInstrument); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func decodeInstrument(c *cursor, s *Session) (Record, error) {
	inst := &Instrument{
		Volume:    c.u8(),
		Pan:       c.u8(),
		Priority:  c.u8(),
		Flags:     c.u8(),
		TremType:  c.u8(),
		TremRate:  c.u8(),
		TremDepth: c.u8(),
		TremDelay: c.u8(),
		VibType:   c.u8(),
		VibRate:   c.u8(),
		VibDepth:  c.u8(),
		VibDelay:  c.u8(),
		BendRange: c.s16(),
	}
	inst.SoundCount = c.s16()
	if c.err != nil {
		return nil, c.err
	}
	if err := checkCount("sound count", inst.SoundCount); err != nil {
		return nil, err
	}

	offsets := c.offsets(int(inst.SoundCount))
	if c.err != nil {
		return nil, c.err
	}

	var err error
	inst.Sounds, err = registerAll(s, offsets, KindSound)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func decodeSound(c *cursor, s *Session) (Record, error) {
	envelope := c.u32()
	keyMap := c.u32()
	waveTable := c.u32()
	snd := &Sound{
		SamplePan:    c.u8(),
		SampleVolume: c.u8(),
		Flags:        c.u8(),
	}
	if c.err != nil {
		return nil, c.err
	}

	var err error
	if snd.WaveTable, err = s.Register(waveTable, KindWaveTable); err != nil {
		return nil, err
	}
	if snd.Envelope, err = s.Register(envelope, KindEnvelope); err != nil {
		return nil, err
	}
	if snd.KeyMap, err = s.Register(keyMap, KindKeyMap); err != nil {
		return nil, err
	}
	return snd, nil
}

func decodeEnvelope(c *cursor, _ *Session) (Record, error) {
	env := &Envelope{
		AttackTime:   c.s32(),
		DecayTime:    c.s32(),
		ReleaseTime:  c.s32(),
		AttackVolume: c.u8(),
		DecayVolume:  c.u8(),
	}
	if c.err != nil {
		return nil, c.err
	}
	return env, nil
}

func decodeKeyMap(c *cursor, _ *Session) (Record, error) {
	km := &KeyMap{
		VelocityMin: c.u8(),
		VelocityMax: c.u8(),
		KeyMin:      c.u8(),
		KeyMax:      c.u8(),
		KeyBase:     c.u8(),
		Detune:      c.s8(),
	}
	if c.err != nil {
		return nil, c.err
	}
	return km, nil
}

func decodeWaveTable(c *cursor, s *Session) (Record, error) {
	wt := &WaveTable{
		Base:  c.u32(),
		Len:   c.s32(),
		Type:  WaveType(c.u8()),
		Flags: c.u8(),
	}
	padA, padB := c.u8(), c.u8()
	if c.err != nil {
		return nil, c.err
	}
	if padA != 0 || padB != 0 {
		return nil, fmt.Errorf("%w: wave table pad bytes %02X %02X", ErrNonZeroPadding, padA, padB)
	}

	switch wt.Type {
	case WaveADPCM:
	case WaveRaw16:
		// The raw wave info layout is not known; refuse rather than guess.
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedWaveType, wt.Type)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownWaveType, wt.Type)
	}

	loop := c.u32()
	book := c.u32()
	if c.err != nil {
		return nil, c.err
	}

	var err error
	if wt.Loop, err = registerOptional(s, loop, KindLoop); err != nil {
		return nil, err
	}
	if wt.Book, err = registerOptional(s, book, KindBook); err != nil {
		return nil, err
	}
	return wt, nil
}

func decodeBook(c *cursor, _ *Session) (Record, error) {
	book := &Book{
		Order:       c.s32(),
		NPredictors: c.s32(),
	}
	if c.err != nil {
		return nil, c.err
	}
	// the container stores order as s16 and npredictors as u16
	if book.Order < 0 || book.Order > math.MaxInt16 || book.NPredictors < 0 || book.NPredictors > math.MaxUint16 {
		return nil, fmt.Errorf("%w: order %d, npredictors %d", ErrCodebookSizeMismatch, book.Order, book.NPredictors)
	}

	size := BookSize(book.Order, book.NPredictors)
	if size > int64(len(c.buf)) {
		return nil, fmt.Errorf("%w: codebook of %d bytes exceeds buffer", ErrTruncatedBuffer, size)
	}

	raw := c.take(int(size))
	if c.err != nil {
		return nil, c.err
	}

	book.Coefficients = make([]int16, len(raw)/2)
	for i := range book.Coefficients {
		book.Coefficients[i] = int16(binary.BigEndian.Uint16(raw[i*2:]))
	}
	return book, nil
}

func decodeLoop(c *cursor, _ *Session) (Record, error) {
	loop := &Loop{
		Start: c.u32(),
		End:   c.u32(),
		Count: c.u32(),
	}
	for i := range loop.State {
		loop.State[i] = c.s16()
	}
	if c.err != nil {
		return nil, c.err
	}
	return loop, nil
}
