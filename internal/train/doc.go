// Package train keeps the description and base of every pull request in a
// stack consistent with the shape of the stack.
//
// A train is recorded inside each pull request description as a delimited
// annotation listing the member pull requests. A pass reads one snapshot of
// open requests, resolves each branch's membership and base through the
// commit graph, and rewrites only the requests whose annotation or base
// changed. Members that left the stack because they were merged are carried
// forward so reviewers can still see them.
//
// The commit graph and the request host are consumed through the Graph and
// Host interfaces; this package performs no process or network I/O itself.
package train
