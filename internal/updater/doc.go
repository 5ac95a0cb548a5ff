// Package updater implements the download-then-install pipeline for the
// game package. It streams the archive to a temp file with throttled
// progress and throughput reports, extracts it over the install root on a
// worker goroutine, checks that the executable is really there, and writes
// the install marker. The temp archive never outlives a pipeline run.
package updater
