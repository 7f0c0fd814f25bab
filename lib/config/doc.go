// Package config is the role-aware view over a ServerSync configuration file.
//
// A SyncConfig owns one categorised config file (see package mcconfig) and
// the schema of its role. Loading either bootstraps the file from the schema
// or parses it, then resolves every schema entry into a typed field:
//
//	cfg, err := config.Load(config.RoleServer, config.WithBaseDir(dir))
//	if err != nil {
//		// the file exists but is unreadable; cfg still serves defaults
//	}
//	port := cfg.ServerPort
//
// Entries are found by name in any category. FILE_IGNORE_LIST falls back to
// the older MOD_IGNORE_LIST. Entries that are missing or fail validation
// resolve to their schema default and are reported through Diagnostics; the
// parsed document itself is never corrected by a read, so Flush writes back
// what the user wrote plus whatever was changed through the Set methods.
package config
