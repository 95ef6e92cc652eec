// Package ops implements the operators a graph node can be bound to.
//
// The set of operators is closed: every node carries exactly one Op, a Kind
// plus a Reversed flag, and the Registry dispatches it to a kernel. Each
// binary kernel validates its operand count before touching the backend.
//
// Reversed kernels receive their operands as (right, left) and still compute
// left OP right. The graph package binds them when the left operand has the
// smaller rank so that predecessor order follows the richer shape.
package ops
