// Package cadence is a cooperative, single-threaded task scheduler for
// [Ebitengine] games: delayed calls, repeating calls, frame skips, fixed-step
// waits, predicate waits and tweens, all cancelled automatically when the
// object that owns them goes away.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := cadence.NewScene()
//	hero := cadence.NewNode("hero")
//	scene.Root().AddChild(hero)
//
//	sch := scene.Scheduler()
//	sch.InvokeDelayed(hero, func() { fmt.Println("boom") }, 1.5)
//
//	cadence.Run(scene, cadence.RunConfig{Title: "My Game", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly, or skip the Scene entirely and
// step a [Scheduler] with [Scheduler.Advance] and [Scheduler.EndOfFrame].
//
// # Owners
//
// Every task is scheduled against an [Owner]. A task starts only if its owner
// is active, and it is abandoned at its next resumption point once the owner
// is not. [Node] is an owner tree (a node is active when it and all its
// ancestors are active and it is not disposed); [Scope] is an explicit
// cancellation token. A nil or inactive owner, or a nil callback, makes every
// scheduling call a silent no-op that returns a nil [*Task].
//
// # Coroutines
//
// A [Coroutine] is an iter.Seq of [Wait] values. Yield [NextFrame],
// [WaitSeconds], [WaitSecondsRealtime], [EndOfFrame], [FixedUpdate],
// [WaitUntil], [WaitWhile] or [WaitTask] to suspend:
//
//	sch.Start(hero, func(yield func(cadence.Wait) bool) {
//		for i := 3; i > 0; i-- {
//			fmt.Println(i)
//			if !yield(cadence.WaitSeconds(1)) {
//				return
//			}
//		}
//		fmt.Println("go")
//	})
//
// A panicking coroutine fails only its own task. Wrap it with [RunThrowing]
// (or [RunFallible] for error-returning coroutines) to receive the failure
// on a callback instead.
//
// # Time
//
// Scaled time follows [Scheduler.TimeScale]; unscaled time does not. Fixed
// steps run from [Scheduler.Advance] at [Scheduler.FixedDelta] intervals of
// scaled time. Wall-clock schedules ([Scheduler.InvokeSchedule], cron
// syntax) follow [Scheduler.Now], which advances with unscaled time.
//
// Tweens (via [gween]) run as tasks with [Scheduler.InvokeTween]. ECS
// integration (via [Donburi]) lives in cadence/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package cadence
