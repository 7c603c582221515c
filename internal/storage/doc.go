// Package storage persists the seesaw state as one JSON blob under a fixed
// key in a key-value backend.
//
// Backends:
//
//   - [GdataBlob]: per-user application data via quasilyte/gdata (default)
//   - [SQLiteBlob]: a single-table SQLite database
//   - [MemoryBlob]: process memory, for tests and dry runs
//
// The blob layout matches what the browser version kept in localStorage:
//
//	{"objects":[{"weight":5,"position":-100}],"angle":-30,
//	 "leftTorque":500,"rightTorque":0,"leftWeight":5,"rightWeight":0,
//	 "nextWeight":7}
package storage
