// Package cli provides the interactive ProfileKeeper command-line client.
//
// App wires configuration, the local cache database, the gRPC client and the
// services, then runs a REPL until the user exits. A background watcher pings
// the server and flips the prompt between online and offline.
//
// Screens are modelled by Router, which tracks the current location and is
// the profile.Navigator handed to edit sessions. The edit commands
// (editaddress, resetpassword) prompt every field with the current value as
// default, ask to save or cancel, and on save block until the session's
// scheduled redirect has happened.
package cli
