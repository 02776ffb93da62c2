/*
Package domain contains the core domain models of the chainalign composer.

It defines the entities a chain is built from, the transition lifecycle a link goes
through while it is being edited, and the wire types exchanged with the external
comparison (session) service. This package is kept pure and free of I/O, following
the Hexagonal Architecture used across the project.

# Key Entities

  - MediaType: the medium a unit consumes or produces (text, audio, video, image).
  - Unit: a single processing stage (a "model") with fixed input and output types.
  - Link: one position in a chain, optionally holding a Unit, plus its transition state.
  - Commit: the flattened, settled contents of a chain tagged with a provenance Revision.
  - Vote: the outcome categories relayed untouched to the session service.
*/
package domain
