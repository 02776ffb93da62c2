package cli

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Interrupt is a context cancelled by the first SIGINT or SIGTERM.
// It remembers which signal ended it so commands can report the shutdown reason.
type Interrupt struct {
	context.Context
	cancel context.CancelFunc
	caught atomic.Value // os.Signal
}

// NotifyInterrupt starts watching for termination signals.
// Stop must be called to release the signal handler.
func NotifyInterrupt(parent context.Context) *Interrupt {
	return notifyOn(parent, make(chan os.Signal, 1), true)
}

func notifyOn(parent context.Context, sigs chan os.Signal, register bool) *Interrupt {
	ctx, cancel := context.WithCancel(parent)
	in := &Interrupt{Context: ctx, cancel: cancel}

	if register {
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	}
	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			in.caught.Store(sig)
			cancel()
		case <-ctx.Done():
		}
	}()
	return in
}

// Stop cancels the context and releases the signal handler.
func (in *Interrupt) Stop() {
	in.cancel()
}

// Signal returns the signal that ended the context, or nil when it ended otherwise.
func (in *Interrupt) Signal() os.Signal {
	sig, _ := in.caught.Load().(os.Signal)
	return sig
}

// Reason describes why the context ended, for shutdown logs.
func (in *Interrupt) Reason() string {
	if sig := in.Signal(); sig != nil {
		return sig.String()
	}
	if err := in.Err(); err != nil {
		return err.Error()
	}
	return ""
}
