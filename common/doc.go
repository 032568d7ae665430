// Package common provides shared constants, sentinel errors, interfaces and
// the application logger used throughout GhostCAT.
//
//   - Constants: application id, file names, daemon timings, UI dimensions
//   - Errors: sentinel errors checked with errors.Is, plus WrapError
//   - Interfaces: the Logger abstraction
//   - Logger: leveled printf-style logging with optional rotated file output
//
// # Usage
//
//	common.LogInfo("Loaded %d profiles for %s", len(profiles), device.Name())
//
//	if errors.Is(err, common.ErrVersionMismatch) {
//	    // ghostcatd is too old or too new
//	}
package common
