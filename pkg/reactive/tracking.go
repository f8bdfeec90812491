package reactive

import (
	"context"
	"runtime"
	"sync"
)

// TrackingContext holds the reactive state for a goroutine.
// Each goroutine has its own tracking context, so watchers evaluated on
// different goroutines never attribute reads to each other.
type TrackingContext struct {
	// current is the subscriber whose evaluation is in progress.
	// nil means reads are plain, untracked accesses.
	current Subscriber

	// notifyDepth counts nested Dep notifications on this goroutine.
	// A callback that writes a tracked property re-enters notify.
	notifyDepth int

	// spanCtx carries the innermost notify span so that re-entrant
	// notifications nest under the write that caused them.
	spanCtx context.Context

	gid uint64
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID returns the numeric ID of the calling goroutine,
// parsed from the "goroutine <id> " header of its stack.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current goroutine,
// creating it on first use.
func getTrackingContext() *TrackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*TrackingContext)
	}

	ctx := &TrackingContext{gid: gid}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// releaseIfIdle drops ctx once nothing is being evaluated or notified on
// its goroutine, so goroutines that exit leave no entry behind.
func releaseIfIdle(ctx *TrackingContext) {
	if ctx.current == nil && ctx.notifyDepth == 0 {
		trackingContexts.CompareAndDelete(ctx.gid, ctx)
	}
}

// activate makes s the subscriber that property reads register into.
func activate(s Subscriber) {
	getTrackingContext().current = s
}

// deactivate clears the active subscriber. It is not a stack: whatever was
// active before is gone.
func deactivate() {
	ctx := getTrackingContext()
	ctx.current = nil
	releaseIfIdle(ctx)
}

// activeSubscriber returns the subscriber being evaluated on this goroutine,
// or nil.
func activeSubscriber() Subscriber {
	ctx, ok := trackingContexts.Load(getGoroutineID())
	if !ok {
		return nil
	}
	return ctx.(*TrackingContext).current
}

// Active returns the subscriber currently being evaluated on the calling
// goroutine, or nil when reads are untracked.
func Active() Subscriber {
	return activeSubscriber()
}

// Untracked runs fn with tracking disabled and restores the previously
// active subscriber afterwards.
//
// Example:
//
//	Untracked(func() {
//	    // Reading here does not register the watcher under evaluation
//	    name := user.Get("name")
//	    log.Println(name)
//	})
func Untracked(fn func()) {
	ctx := getTrackingContext()
	old := ctx.current
	ctx.current = nil
	defer func() {
		// fn may have released ctx; restore into whatever is current now.
		ctx := getTrackingContext()
		ctx.current = old
		releaseIfIdle(ctx)
	}()
	fn()
}

// Release drops the tracking context of the calling goroutine
// unconditionally. Contexts are dropped on their own once a goroutine has
// no evaluation or notification in progress.
func Release() {
	trackingContexts.Delete(getGoroutineID())
}

// enterNotify increments the notify depth and returns the new depth.
func enterNotify() (*TrackingContext, int) {
	ctx := getTrackingContext()
	ctx.notifyDepth++
	return ctx, ctx.notifyDepth
}

// exitNotify decrements the notify depth.
func exitNotify(ctx *TrackingContext) {
	ctx.notifyDepth--
	releaseIfIdle(ctx)
}
