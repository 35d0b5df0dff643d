// Package pipeline runs the analysis agents for one stock as a sequence of
// concurrent stages guarded by dependency gates.
//
// Every task owns one typed slot in a RunState. Settlements are sent as
// messages to the Store's state loop, which is the only writer of RunState;
// observers read value snapshots through Store.Snapshot or Store.Subscribe.
// Each Reset starts a new epoch, and settlements from older epochs are
// discarded.
package pipeline
