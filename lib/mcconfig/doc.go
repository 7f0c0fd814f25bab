// Package mcconfig reads and writes the categorised key/value configuration
// format used by Forge-era Minecraft mods and by serversync.
//
// A file is a sequence of category blocks. Each block holds type-tagged
// entries, either scalar or list valued, optionally preceded by comment lines:
//
//	# Configuration file
//	general {
//	    # set true to push client side mods from clientmods directory
//	    B:PUSH_CLIENT_MODS=false
//	}
//
//	rules {
//	    S:DIRECTORY_INCLUDE_LIST <
//	        mods
//	    >
//	}
//
// Type tags are B (bool), I (int) and S (string, or list of strings when the
// entry uses the `<` ... `>` list syntax). Comment lines start with `#` or `//`.
//
// The Reader produces a Document which keeps category order, entry order and
// comments, so that a Document read from disk and written back with the Writer
// only differs from the original in insignificant whitespace. Files are UTF-8.
//
// Entries whose scalar text does not match their tag (for example `B:X=yes`)
// are kept as InvalidValue so the original text survives a rewrite; it is up
// to the caller to decide what to do with them.
package mcconfig
