// Package operation exposes the engine's arithmetic as named operations that
// the command line, batch files and the interactive session dispatch by name.
//
// Every operation takes and returns *bigint.Int values. Results that the
// engine produces as plain integers, such as the Jacobi symbol or a
// comparison, are widened to a *bigint.Int of the first operand's capacity.
package operation
