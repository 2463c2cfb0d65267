// Package goroutine launches background work that must not take the
// process down with it.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"helpdesk/internal/shared/logger"
)

// SafeGo runs fn on its own goroutine and turns a panic into an error log
// carrying the stack. Event handlers run through this so a bad subscriber
// cannot kill the server.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
