/*
Package session implements the comparison-session side of chainalign.

Service is an in-process ports.SessionService: it records submitted chain sets, plays
matchups between two randomly paired chains and stores votes. It does not score chains.

Manager guards read-modify-write cycles on stored sessions with per-session locks,
optionally backed by a ports.DistributedLocker when several replicas share a store.
*/
package session
