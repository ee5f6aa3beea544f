// ABOUTME: AIFC/AIFF container writer package
// ABOUTME: Builds FORM containers with VADPCM codebook chunks for N64 samples
// Package aifc writes AIFF-C containers for N64 VADPCM samples.
//
// A VADPCM container is FORM/AIFC holding, in order, a COMM chunk
// (compression VAPC "VADPCM ~4-1"), an APPL "stoc" VADPCMCODES chunk with
// the predictor codebook, and an SSND chunk with the packed frames. All
// integers are big-endian and odd-length chunk bodies get one zero pad byte
// that is not counted in the chunk length.
//
// Only writing is supported.
//
// Example:
//
//	data, err := aifc.Encode(22050, payload, aifc.Codebook{
//	    Order:       2,
//	    NPredictors: 4,
//	    Table:       book.Packed(),
//	})
package aifc
