// SPDX-License-Identifier: EPL-2.0

// Package level turns generated walls into OhShape level documents and loads
// the difficulty profiles and detection settings a run uses.
//
// A document is YAML 1.1 with one level holding one sequence entry per wall:
//
//	doc := level.FromWalls("song", 183.2, profile, walls, rng)
//	_, err := doc.WriteTo(f)
//
// Configuration files overlay the built-in profiles by label:
//
//	detection:
//	  limit: 1.3
//	profiles:
//	  - label: hard
//	    minInterval: 0.35
//	  - label: expert
//	    speed: 7
//	    minInterval: 0.25
//	    maxConsecutiveCoins: 2
package level
