// Package profile implements the edit session behind every "change some of my
// profile fields" screen of the client.
//
// A Session is opened over an already-authenticated identity whose profile is
// held in the local Cache. The user edits a buffer seeded from that cached
// record, submits it, and the session:
//
//  1. validates the buffer with the FieldSet rules,
//  2. optionally confirms the identity against the remote Store,
//  3. sends the patch to Store.Update,
//  4. merges the cacheable fields into a fresh read of the Cache and writes it,
//  5. schedules a redirect after the FieldSet success delay.
//
// Any failure leaves the Cache exactly as it was and moves the session to
// StatusFailed with a field-set specific message. Only one submission can be
// in flight per session; Close cancels the pending redirect and makes late
// results of in-flight calls no-ops.
//
// Collaborators (Store, Cache, Navigator, Clock) are interfaces so the session
// can be driven entirely from tests.
package profile
