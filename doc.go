/*
Package chainalign composes and validates chains of media-processing units (models).

A chain is an ordered list of units where each unit consumes the medium produced by the
one before it, for example text -> text -> audio. Users build one or more chains,
selecting, replacing and deleting units while the renderer plays enter and exit
transitions. Chains are then submitted together to a comparison session service, which
requires every chain to share the same overall input and output medium.

# Architecture

  - pkg/domain: units, media types, links, revisions and the session wire types.
  - pkg/catalog: the read-only unit index and catalog decoding.
  - pkg/validation: pure chain and chain-set validation, errors returned as data.
  - pkg/editor: the per-chain state machine with its completion barrier.
  - pkg/registry: the chain set, with stable ids and submission.
  - pkg/ports and pkg/adapters: collaborators (HTTP, Redis, memory, files, MCP).

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/chainalign"
	)

	func main() {
		ctx := context.Background()

		c, err := chainalign.New(ctx)
		if err != nil {
			log.Fatal(err)
		}

		first := c.Chains().Active()
		if err := c.Compose(first, "gpt-4", "tts-1"); err != nil {
			log.Fatal(err)
		}

		second := c.Chains().AddChain()
		if err := c.Compose(second, "claude-3-haiku", "eleven_v3"); err != nil {
			log.Fatal(err)
		}

		if report := c.Validate(); !report.Valid {
			log.Fatal(report.Err())
		}
	}
*/
package chainalign
