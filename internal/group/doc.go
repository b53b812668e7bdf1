/*
Package group implements the definition phase of an assembly.

A Group accumulates named children (elements, nested groups and mounted
groups) and the overlays declared in its scope. Finish freezes the whole
tree and pushes every overlay down onto the elements it selects:

 1. Scoping: each group inherits the overlays of its ancestors and appends
    its own. An overlay selects elements under the declaring group whose
    path, relative to that group, matches the overlay's target pattern.
 2. Ordering: an element's chains list ancestor overlays before those of
    inner groups, and overlays of one group in declaration order.
 3. Config: a group inherits the config directory of its parent unless it
    sets its own; the value reaches builders through their BuildContext.

The result is an immutable Tree consumed by the registry. No overlay can be
added once Finish has run.
*/
package group
