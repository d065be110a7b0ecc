// Package api defines the public types used by featuretour:
// tours and steps, placements, the navigator contract, observers,
// recorded steps and the capability interfaces a host UI implements.
//
// Most applications should import the root package
// github.com/petrijr/featuretour, which re-exports the commonly used
// parts of this package.
package api
