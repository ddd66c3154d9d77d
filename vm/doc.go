// Package vm is the switch-dispatched interpreter core for a register-
// based dex-style instruction set. It executes one fully resolved method
// body over an initialized shadow frame until the method returns or an
// uncaught thrown value unwinds past it.
//
// Everything around the loop — class/method/field/string resolution,
// allocation, method dispatch, monitors, garbage collection, and the
// instrumentation backend — is reached through the Runtime interface, and
// failures travel exclusively through the thread's pending-exception
// slot. The package's one externally interesting operation is Execute.
package vm
