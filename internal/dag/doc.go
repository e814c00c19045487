// Package dag orders the IP instances of a build. It builds a directed
// acyclic graph whose nodes are instance addresses (`ip.<core>.<name>`) and
// whose edges come from `depends_on` lists and from argument expressions
// that reference another instance's outputs.
package dag
