// Package bonsai grows an ASCII bonsai tree one animation frame at a time.
//
// The package is the growth engine only. It never touches a terminal:
// every visible change leaves through a [Sink] as a draw command of
// position, glyph string and colour.
//
//   - [Branch]: an append-only run of [Step] values with a tapering [Shape]
//   - [Appearance]: cosmetic parameters drawn once per tree
//   - [Tree]: owns the noise field, the random source, the branches and
//     the growth phase; [Tree.Step] performs exactly one action
//
// # Example
//
//	tree, err := bonsai.Plant(bonsai.Options{Seed: 42, TrunkWidth: 7, Screen: bonsai.Screen{Width: 80, Height: 24}})
//	if err != nil {
//		return err
//	}
//	var rec bonsai.Recorder
//	for tree.Step(&rec) {
//	}
//
// # Determinism
//
// For a fixed seed, trunk width and screen, the sequence of steps, leaves
// and draw commands is reproducible. All randomness flows through the
// [Random] and [Noise] values handed to [New].
//
// # Thread Safety
//
// A Tree is NOT safe for concurrent use. Independent trees share no state
// and may be grown on separate goroutines.
package bonsai
