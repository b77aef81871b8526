// Package scene holds the animated visualizations.
//
// Every scene draws one complete frame per call:
//
//	sc := scene.Default.New(scene.Phasor, scene.Options{})
//	s.Clear()
//	sc.Render(s, t, p)
//
// Most scenes are plain functions of (t, params) and redraw identically for
// identical inputs. Two scenes keep private state across frames:
// ArrowOfTime integrates particle motion from the change in simulation time
// and PathIntegral samples a random path ensemble once, when it is created.
// Both take their randomness from Options.Seed so that tests can replay them.
//
// Scenes are not safe for concurrent use; a stage renders one at a time.
package scene
