/*
Package events records machine lifecycle events for debugging views.

A Log keeps a bounded circular buffer of recent entries, consumed with Pop or Drain,
plus an unbounded trail kept for full-history views. Consecutive entries of the same
kind for the same state and transition are coalesced into one entry with a repeat count.
*/
package events
