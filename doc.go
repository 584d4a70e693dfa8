// Package scicalc implements the evaluation core of a scientific calculator.
//
// Input is written the way it is typed on a calculator keypad. "5! + sin(30)
// - 2^3" uses postfix factorial, a caret for exponentiation, and trig
// functions which take degrees or radians depending on the context's Mode.
// "50%" is fifty percent, i.e. 0.5. Normalize rewrites that shorthand into
// canonical text, Parse turns canonical text into an expression tree, and a
// Context evaluates trees against a fixed namespace of math functions and
// constants. Nothing outside that namespace is reachable from an expression.
//
// Results are rounded to 12 decimal places. A Calculator adds the memory
// register and history list that a calculator front end drives.
package scicalc
