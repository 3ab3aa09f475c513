// Package frugurt implements the front end of the Frugurt language: a lexer
// and a hand-written parser that turn source text into a typed AST with
// source spans. The surface syntax covers:
//   - Statements: `let`, assignment and property assignment, `if`/`else`,
//     `while`, `return`, `break`, `continue` and braced blocks.
//   - Expressions: number, string, bool and `nah` literals, `fn(...)` function
//     literals, blocks and `if` expressions that yield their trailing value,
//     `scope()` and `scope s { ... }`, and `import`.
//   - Postfix chains of calls `f(x)`, curry calls `f$(x)`, instantiations
//     `T:{x: 1}` and property access `a.b`.
//   - Binary operators with a fixed precedence table; any other operator
//     spelling binds tighter than all of them.
//   - Operator overloads `[commutative] operator SYM (a: A, b: B) { ... }`.
//   - `struct`, `class` and `data` declarations with fields, computed
//     properties, an `impl` section and a `constraints` section of watches.
//
// Comments use `//` and non-nesting `/* */`. Parsing stops at the first
// error unless Config.Recover is set.
package frugurt
