/*
Package states provides the stock State implementations.

  - Empty: does nothing. Used as filler and as the substitute for nil states.
  - Lambda: assembled from optional enter, update, exit and destroy callbacks.
  - Parallel: fans every lifecycle call out to an ordered list of substates.
  - Substate: drives a nested machine as a single state.
  - Coroutine: runs a resumable Routine one step per Update.

Parallel stops at the first substate returning an error; later substates do not
receive the call for that tick.
*/
package states
