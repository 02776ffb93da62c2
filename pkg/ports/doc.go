/*
Package ports defines the driven ports (interfaces) of the chainalign composer.

These interfaces decouple the composition core from its external collaborators: where the
unit catalog comes from, which comparison service receives validated chains, and where
that service keeps its session records.

# Key Interfaces

  - CatalogSource: Supplies the unit catalog (built-in, file, or remote HTTP service).
  - SessionService: Accepts validated chains and runs comparison turns and votes.
  - SessionStore: Persists session records for the reference session service.
  - DistributedLocker: Provides distributed locking for concurrent session access.
*/
package ports
