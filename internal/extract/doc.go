// ABOUTME: Bank sample extraction package
// ABOUTME: Turns a ctl/tbl pair into AIFC/AIFF files and a manifest
// Package extract converts the samples of an N64 audio bank into files.
//
// For every wave table, sorted by its base offset in the sample file, Run
// writes sound-<BASE>.aifc, decodes it to sound-<BASE>.aiff, and removes the
// container once decoding succeeded. When a sample fails, its container is
// kept, any partial .aiff is removed, and sound-<BASE>.yaml describes the
// wave table. manifest.yaml lists every sample with BLAKE3 digests of the
// files left on disk.
//
// Example:
//
//	ex := extract.New(extract.OptionsFromConfig(cfg))
//	manifest, err := ex.Run(ctx, job, cfg.OutDir(job))
package extract
