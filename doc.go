// Package protoplay replays a design tool's prototype animations.
//
// A prototype export is a tree of [Snapshot] records (geometry, fills,
// auto-layout flags and click/timeout [Reaction] rules) plus the variant
// groups a component instance can switch between. protoplay diffs two
// snapshots of the same logical element, compiles the diff into style
// mutations, and drives those mutations through time with CSS-transition
// semantics, keeping track of which variant in each group is active.
//
// # Quick start
//
//	doc, err := protoplay.LoadDocument(f)
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene := protoplay.NewScene()
//	if err := scene.Load(doc); err != nil {
//		log.Fatal(err)
//	}
//	// each frame:
//	scene.Update(1.0 / 60)
//
// The ebiten-backed window lives in the player sub-package:
//
//	player.Run(scene, player.Config{Title: "Prototype", Width: 800, Height: 600})
//
// # Change detection
//
// [DetectChanges] compares a source and target snapshot and returns an
// ordered list of [Change] records. Root properties come first (size,
// opacity, background, borderRadius, layout, sizing), followed by every
// descendant matched by its slash-joined name path:
//
//	changes := protoplay.DetectChanges(hover, pressed)
//	under, err := protoplay.FilterChanges(changes, "Button/**")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, c := range under {
//		fmt.Println(c)
//	}
//
// # Elements
//
// The engine never touches a concrete renderer. It writes inline style
// declarations through the [Element] interface and finds descendants
// through a [Locator]. [Node] is the built-in retained implementation: it
// parses declarations into visual state and interpolates the ones covered
// by a "transition" declaration with gween tweens.
//
// # Time
//
// Everything runs on one goroutine. A [Scheduler] is advanced explicitly
// (Scene.Update does it each frame); animation frames, completion timers
// and timeout reactions are all callbacks on that scheduler.
package protoplay
