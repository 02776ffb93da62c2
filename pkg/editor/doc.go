/*
Package editor implements the per-chain state machine used while a user composes a chain.

An Editor owns the ordered links of one chain. Selections and deletions never remove
links directly: affected links are first marked (Exiting or Resetting) and the array is
only truncated once every link of that batch has reported, through Settle, that its
visual transition finished. This completion barrier keeps the logical chain in step with
what is on screen even though transitions finish independently and out of order.

Settled contents are pushed upward through the OnChange callback as a domain.Commit
tagged with a Revision. When the owner later hands the same revision back through Sync,
the editor recognizes its own echo and ignores it; any other revision rebuilds the links.

An Editor is not safe for concurrent use. Drive it from a single event loop.
*/
package editor
