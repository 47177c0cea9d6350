// SPDX-License-Identifier: EPL-2.0

// Package wall turns a note sequence into typed level events and renders
// them as the game's object codes.
//
// A Generator walks the notes three at a time and emits one Wall for each
// interior note. Its decisions depend on the gaps to the neighbouring notes,
// on the previous wall and on how many coins were forced in a row:
//
//	rng := rand.New(rand.NewPCG(seed, seed))
//	walls := wall.Generate(found, wall.Profile{Speed: 5, MinInterval: 0.4, MaxConsecutiveCoins: 3}, rng)
//	for _, w := range walls {
//	    fmt.Printf("%.2f %s\n", w.Time, wall.Encode(w, rng))
//	}
//
// All randomness comes from the *rand.Rand passed in; a seeded generator
// makes the output reproducible.
package wall
